package models

import "gorm.io/gorm"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ChatMember grants a user a role within one chat. There is at most one row
// per (chat, user).
type ChatMember struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	ChatID   string `gorm:"size:36;not null;uniqueIndex:idx_chat_members_chat_user,priority:1" json:"chatId"`
	UserID   string `gorm:"size:36;not null;uniqueIndex:idx_chat_members_chat_user,priority:2;index" json:"userId"`
	Role     string `gorm:"size:16;not null" json:"role"`
	JoinedAt int64  `gorm:"not null" json:"joinedAt"`
	IsMuted  bool   `gorm:"not null;default:false" json:"isMuted"`
}

func (m *ChatMember) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}
