package models

import "time"

// Section is a thematic journal section submissions are filed under.
type Section struct {
	SectionID     int        `gorm:"primaryKey;column:section_id" json:"section_id"`
	Slug          string     `gorm:"column:slug;unique" json:"slug"`
	TitleRu       string     `gorm:"column:title_ru" json:"title_ru"`
	TitleKk       string     `gorm:"column:title_kk" json:"title_kk"`
	TitleEn       string     `gorm:"column:title_en" json:"title_en"`
	Description   string     `gorm:"column:description" json:"description"`
	SectionOrder  int        `gorm:"column:section_order" json:"section_order"`
	IsActive      bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt      time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (Section) TableName() string {
	return "sections"
}

// GetTitle returns the section title in the requested language, defaulting to Russian.
func (s *Section) GetTitle(language string) string {
	switch language {
	case "kk":
		if s.TitleKk != "" {
			return s.TitleKk
		}
	case "en":
		if s.TitleEn != "" {
			return s.TitleEn
		}
	}
	return s.TitleRu
}
