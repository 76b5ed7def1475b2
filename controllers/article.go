package controllers

import (
	"net/http"

	"journal-portal-api/config"
	"journal-portal-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListArticles returns published articles, optionally filtered by issue or
// section.
func ListArticles(c *gin.Context) {
	query := config.DB.Preload("Authors").Preload("Section").
		Where("status = ?", models.ArticlePublished)

	if issueID := c.Query("issue_id"); issueID != "" {
		query = query.Where("issue_id = ?", issueID)
	}
	if sectionID := c.Query("section_id"); sectionID != "" {
		query = query.Where("section_id = ?", sectionID)
	}

	var articles []models.Article
	if err := query.Order("published_at DESC").Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"articles": articles,
		"total":    len(articles),
	})
}

// GetArticle returns one article and bumps its view counter.
func GetArticle(c *gin.Context) {
	articleID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var article models.Article
	if err := config.DB.Preload("Authors").Preload("Issue").Preload("Section").
		Where("article_id = ?", articleID).
		First(&article).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	config.DB.Model(&article).UpdateColumn("views", gorm.Expr("views + 1"))
	article.Views++

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"article": article,
	})
}

// ListSections returns the active journal sections in display order.
func ListSections(c *gin.Context) {
	var sections []models.Section
	if err := config.DB.Where("is_active = ?", true).
		Order("section_order ASC").
		Find(&sections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"sections": sections,
	})
}
