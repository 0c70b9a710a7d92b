package impl

import (
	"TeamChat/models"
	"TeamChat/repositories"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type ChatRepositoryImpl struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) repositories.ChatRepository {
	return &ChatRepositoryImpl{DB: db}
}

func (r *ChatRepositoryImpl) CreateWithCreator(ctx context.Context, chat *models.Chat, member *models.ChatMember) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return fmt.Errorf("insert chat: %w", err)
		}
		member.ChatID = chat.ID
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("insert creator membership: %w", err)
		}
		return nil
	})
}

func (r *ChatRepositoryImpl) FindByID(ctx context.Context, id string) (models.Chat, error) {
	var chat models.Chat
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&chat).Error; err != nil {
		return models.Chat{}, translateError(err)
	}
	return chat, nil
}

func (r *ChatRepositoryImpl) ListPage(ctx context.Context, limit int, after *repositories.ChatKey) ([]models.Chat, error) {
	var chats []models.Chat
	query := r.DB.WithContext(ctx).Model(&models.Chat{})

	if after != nil {
		query = query.Where("updated_at < ? OR (updated_at = ? AND id < ?)",
			after.UpdatedAt, after.UpdatedAt, after.ID)
	}

	err := query.Order("updated_at DESC").Order("id DESC").Limit(limit).Find(&chats).Error
	return chats, err
}

func (r *ChatRepositoryImpl) FindMember(ctx context.Context, chatID, userID string) (models.ChatMember, error) {
	var member models.ChatMember
	err := r.DB.WithContext(ctx).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		First(&member).Error
	if err != nil {
		return models.ChatMember{}, translateError(err)
	}
	return member, nil
}

func (r *ChatRepositoryImpl) ListMembers(ctx context.Context, chatID string) ([]models.ChatMember, error) {
	var members []models.ChatMember
	err := r.DB.WithContext(ctx).Where("chat_id = ?", chatID).Order("joined_at ASC").Find(&members).Error
	return members, err
}

func (r *ChatRepositoryImpl) SetMuted(ctx context.Context, chatID, userID string, muted bool) error {
	res := r.DB.WithContext(ctx).Model(&models.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Update("is_muted", muted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *ChatRepositoryImpl) CreateFileUpload(ctx context.Context, upload *models.FileUpload) error {
	return r.DB.WithContext(ctx).Create(upload).Error
}

// DeleteCascade removes, in order: reactions, reads and edits of every
// message, the messages, memberships, file uploads, then the chat itself.
// Everything runs in one transaction so an interrupted delete leaves no orphans.
func (r *ChatRepositoryImpl) DeleteCascade(ctx context.Context, chatID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		messageIDs := tx.Model(&models.Message{}).Select("id").Where("chat_id = ?", chatID)

		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&models.MessageReaction{}).Error; err != nil {
			return fmt.Errorf("delete reactions: %w", err)
		}
		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&models.MessageRead{}).Error; err != nil {
			return fmt.Errorf("delete reads: %w", err)
		}
		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&models.MessageEdit{}).Error; err != nil {
			return fmt.Errorf("delete edits: %w", err)
		}
		if err := tx.Where("chat_id = ?", chatID).Delete(&models.Message{}).Error; err != nil {
			return fmt.Errorf("delete messages: %w", err)
		}
		if err := tx.Where("chat_id = ?", chatID).Delete(&models.ChatMember{}).Error; err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := tx.Where("chat_id = ?", chatID).Delete(&models.FileUpload{}).Error; err != nil {
			return fmt.Errorf("delete file uploads: %w", err)
		}

		res := tx.Where("id = ?", chatID).Delete(&models.Chat{})
		if res.Error != nil {
			return fmt.Errorf("delete chat: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return repositories.ErrNotFound
		}
		return nil
	})
}
