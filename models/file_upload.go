package models

import "gorm.io/gorm"

const (
	AttachmentMessage = "message"
	AttachmentChat    = "chat"
	AttachmentProfile = "profile"
)

// FileUpload holds metadata of a stored file; the bytes live behind FileURL.
type FileUpload struct {
	ID             string  `gorm:"primaryKey;size:36" json:"id"`
	FileName       string  `gorm:"not null" json:"fileName"`
	FileType       string  `gorm:"not null" json:"fileType"`
	FileURL        string  `gorm:"column:file_url;not null" json:"fileUrl"`
	UploadedBy     string  `gorm:"size:36;not null;index" json:"uploadedBy"`
	UploadedAt     int64   `gorm:"not null" json:"uploadedAt"`
	MessageID      *string `gorm:"size:36;index" json:"messageId,omitempty"`
	ChatID         *string `gorm:"size:36;index" json:"chatId,omitempty"`
	AttachmentType *string `gorm:"size:16" json:"attachmentType,omitempty"`
}

func (f *FileUpload) BeforeCreate(tx *gorm.DB) error {
	assignID(&f.ID)
	return nil
}
