package models

import (
	"strings"
	"time"
)

// User roles used across the workflow.
const (
	RoleAuthor   = "author"
	RoleReviewer = "reviewer"
	RoleEditor   = "editor"
	RoleAdmin    = "admin"
)

type User struct {
	UserID      int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Username    string     `gorm:"column:username;unique" json:"username"`
	Email       string     `gorm:"column:email;unique" json:"email"`
	Password    string     `gorm:"column:password" json:"-"`
	FullName    string     `gorm:"column:full_name" json:"full_name"`
	Role        string     `gorm:"column:role" json:"role"` // author|reviewer|editor|admin
	Affiliation *string    `gorm:"column:affiliation" json:"affiliation,omitempty"`
	ORCID       *string    `gorm:"column:orcid" json:"orcid,omitempty"`
	IsStaff     bool       `gorm:"column:is_staff" json:"is_staff"`
	IsActive    bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

// IsPrivileged reports whether the user may perform editorial operations.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleEditor || u.Role == RoleAdmin || u.IsStaff
}

// IsReviewer reports whether the user can receive review assignments.
func (u *User) IsReviewer() bool {
	return u.Role == RoleReviewer
}

// DisplayName returns the full name, falling back to the username.
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	return u.Username
}
