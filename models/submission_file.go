package models

import "time"

// Supplementary file kinds.
const (
	FileKindManuscript    = "manuscript"
	FileKindSupplementary = "supplementary"
	FileKindData          = "data"
	FileKindFigure        = "figure"
	FileKindTable         = "table"
	FileKindOther         = "other"
)

// MaxFileSize is the upload ceiling for submission files (50 MB).
const MaxFileSize = 50 * 1024 * 1024

// SubmissionFile is a supplementary file attached to a submission,
// distinct from the primary manuscript.
type SubmissionFile struct {
	FileID       int        `gorm:"primaryKey;column:file_id" json:"file_id"`
	SubmissionID int        `gorm:"column:submission_id" json:"submission_id"`
	FileType     string     `gorm:"column:file_type" json:"file_type"`
	Name         string     `gorm:"column:name" json:"name"`
	Description  string     `gorm:"column:description" json:"description"`
	OriginalName string     `gorm:"column:original_name" json:"original_name"`
	StoredPath   string     `gorm:"column:stored_path" json:"stored_path"`
	FileSize     int64      `gorm:"column:file_size" json:"file_size"`
	MimeType     string     `gorm:"column:mime_type" json:"mime_type"`
	Version      int        `gorm:"column:version;default:1" json:"version"`
	UploadedBy   int        `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploadedAt   time.Time  `gorm:"column:uploaded_at" json:"uploaded_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Uploader *User `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}

// TableName overrides
func (SubmissionFile) TableName() string {
	return "submission_files"
}

// IsValidFileKind reports whether kind is one of the known file kinds.
func IsValidFileKind(kind string) bool {
	switch kind {
	case FileKindManuscript, FileKindSupplementary, FileKindData,
		FileKindFigure, FileKindTable, FileKindOther:
		return true
	}
	return false
}

// AllowedExtensions returns the extension whitelist for a file kind.
func AllowedExtensions(kind string) []string {
	switch kind {
	case FileKindManuscript:
		return []string{"pdf", "doc", "docx"}
	case FileKindData:
		return []string{"csv", "xls", "xlsx", "zip", "json"}
	case FileKindFigure:
		return []string{"png", "jpg", "jpeg", "tiff", "eps", "pdf"}
	case FileKindTable:
		return []string{"csv", "xls", "xlsx", "pdf", "doc", "docx"}
	default:
		return []string{"pdf", "doc", "docx", "csv", "xls", "xlsx", "zip", "png", "jpg", "jpeg"}
	}
}

// GetFileSizeInMB returns the file size in megabytes.
func (f *SubmissionFile) GetFileSizeInMB() float64 {
	return float64(f.FileSize) / (1024 * 1024)
}
