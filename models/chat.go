package models

import "gorm.io/gorm"

// Chat categories
const (
	CategoryCompanyWide = "company-wide"
	CategoryDepartment  = "department"
	CategoryProject     = "project"
	CategoryPrivate     = "private"
)

// DefaultChatDescription is stored when a chat is created without a description.
const DefaultChatDescription = "This is the first chat ever."

// Chat is a named room. UpdatedAt follows the latest message and, together
// with ID, forms the sort key of the chat list.
type Chat struct {
	ID          string  `gorm:"primaryKey;size:36;index:idx_chats_updated_id,priority:2" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedBy   string  `gorm:"size:36;not null;index" json:"createdBy"`
	CreatedAt   int64   `gorm:"autoCreateTime:false;not null" json:"createdAt"`
	UpdatedAt   int64   `gorm:"autoUpdateTime:false;not null;index:idx_chats_updated_id,priority:1" json:"updatedAt"`
	Image       *string `json:"image,omitempty"`
	Category    string  `gorm:"size:32;not null" json:"category"`
	Department  *string `json:"department,omitempty"`
}

func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

func IsValidCategory(s string) bool {
	switch s {
	case CategoryCompanyWide, CategoryDepartment, CategoryProject, CategoryPrivate:
		return true
	}
	return false
}
