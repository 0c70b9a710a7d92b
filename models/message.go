package models

import "gorm.io/gorm"

// Message is soft-deleted through DeletedAt; readers must skip rows where it is set.
type Message struct {
	ID              string  `gorm:"primaryKey;size:36" json:"id"`
	ChatID          string  `gorm:"size:36;not null;index:idx_messages_chat_ts,priority:1" json:"chatId"`
	SenderID        string  `gorm:"size:36;not null;index" json:"senderId"`
	Content         string  `gorm:"type:text;not null" json:"content"`
	Timestamp       int64   `gorm:"column:sent_at;not null;index:idx_messages_chat_ts,priority:2" json:"timestamp"`
	ParentMessageID *string `gorm:"size:36;index" json:"parentMessageId,omitempty"`
	EditedAt        *int64  `json:"editedAt,omitempty"`
	DeletedAt       *int64  `json:"deletedAt,omitempty"`
	IsPinned        bool    `gorm:"not null;default:false" json:"isPinned"`
	PinnedBy        *string `gorm:"size:36" json:"pinnedBy,omitempty"`
	PinnedAt        *int64  `json:"pinnedAt,omitempty"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}

// MessageRead is a read receipt. A missing row means unread for that user.
type MessageRead struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	MessageID string `gorm:"size:36;not null;uniqueIndex:idx_message_reads_message_user,priority:1" json:"messageId"`
	UserID    string `gorm:"size:36;not null;uniqueIndex:idx_message_reads_message_user,priority:2;index" json:"userId"`
	ReadAt    int64  `gorm:"not null" json:"readAt"`
}

func (r *MessageRead) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

type MessageReaction struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	MessageID string `gorm:"size:36;not null;uniqueIndex:idx_message_reactions_message_user_reaction,priority:1" json:"messageId"`
	UserID    string `gorm:"size:36;not null;uniqueIndex:idx_message_reactions_message_user_reaction,priority:2;index" json:"userId"`
	Reaction  string `gorm:"size:64;not null;uniqueIndex:idx_message_reactions_message_user_reaction,priority:3" json:"reaction"`
	Timestamp int64  `gorm:"column:reacted_at;not null" json:"timestamp"`
}

func (r *MessageReaction) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

// MessageEdit keeps the content a message had before an edit.
type MessageEdit struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	MessageID  string `gorm:"size:36;not null;index" json:"messageId"`
	EditedBy   string `gorm:"size:36;not null" json:"editedBy"`
	OldContent string `gorm:"type:text;not null" json:"oldContent"`
	EditedAt   int64  `gorm:"not null" json:"editedAt"`
}

func (e *MessageEdit) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	return nil
}
