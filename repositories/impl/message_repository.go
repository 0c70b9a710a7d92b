package impl

import (
	"TeamChat/models"
	"TeamChat/repositories"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const readBatchSize = 200

type MessageRepositoryImpl struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) repositories.MessageRepository {
	return &MessageRepositoryImpl{DB: db}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, msg *models.Message) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
		// updated_at only moves forward
		err := tx.Model(&models.Chat{}).
			Where("id = ? AND updated_at < ?", msg.ChatID, msg.Timestamp).
			Update("updated_at", msg.Timestamp).Error
		if err != nil {
			return fmt.Errorf("bump chat updated_at: %w", err)
		}
		return nil
	})
}

func (r *MessageRepositoryImpl) FindByID(ctx context.Context, id string) (models.Message, error) {
	var msg models.Message
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&msg).Error; err != nil {
		return models.Message{}, translateError(err)
	}
	return msg, nil
}

func (r *MessageRepositoryImpl) visible(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&models.Message{}).Where("deleted_at IS NULL")
}

func (r *MessageRepositoryImpl) ListByChat(ctx context.Context, chatID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.visible(ctx).
		Where("chat_id = ?", chatID).
		Order("sent_at DESC").Order("id DESC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) ListRecent(ctx context.Context, chatID string, n int) ([]models.Message, error) {
	var messages []models.Message
	err := r.visible(ctx).
		Where("chat_id = ?", chatID).
		Order("sent_at DESC").Order("id DESC").
		Limit(n).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) ListReplies(ctx context.Context, parentID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.visible(ctx).
		Where("parent_message_id = ?", parentID).
		Order("sent_at ASC").Order("id ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) ListIDsByChat(ctx context.Context, chatID string) ([]string, error) {
	var ids []string
	err := r.visible(ctx).Where("chat_id = ?", chatID).Pluck("id", &ids).Error
	return ids, err
}

func (r *MessageRepositoryImpl) FindReadMessageIDs(ctx context.Context, userID string, messageIDs []string) (map[string]bool, error) {
	read := make(map[string]bool, len(messageIDs))
	if len(messageIDs) == 0 {
		return read, nil
	}

	var ids []string
	err := r.DB.WithContext(ctx).Model(&models.MessageRead{}).
		Where("user_id = ? AND message_id IN ?", userID, messageIDs).
		Pluck("message_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		read[id] = true
	}
	return read, nil
}

func (r *MessageRepositoryImpl) InsertRead(ctx context.Context, messageID, userID string, readAt int64) (bool, error) {
	receipt := models.MessageRead{MessageID: messageID, UserID: userID, ReadAt: readAt}
	res := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&receipt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *MessageRepositoryImpl) InsertReads(ctx context.Context, messageIDs []string, userID string, readAt int64) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}
	receipts := make([]models.MessageRead, 0, len(messageIDs))
	for _, id := range messageIDs {
		receipts = append(receipts, models.MessageRead{MessageID: id, UserID: userID, ReadAt: readAt})
	}
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&receipts, readBatchSize)
	return res.RowsAffected, res.Error
}

func (r *MessageRepositoryImpl) UpdateContent(ctx context.Context, msg *models.Message, edit *models.MessageEdit) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(edit).Error; err != nil {
			return fmt.Errorf("insert edit history: %w", err)
		}
		err := tx.Model(&models.Message{}).Where("id = ?", msg.ID).
			Updates(map[string]interface{}{
				"content":   msg.Content,
				"edited_at": msg.EditedAt,
			}).Error
		if err != nil {
			return fmt.Errorf("update message: %w", err)
		}
		return nil
	})
}

func (r *MessageRepositoryImpl) SoftDelete(ctx context.Context, id string, deletedAt int64) error {
	res := r.DB.WithContext(ctx).Model(&models.Message{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", deletedAt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *MessageRepositoryImpl) SetPinned(ctx context.Context, id string, pinned bool, by string, at int64) error {
	fields := map[string]interface{}{
		"is_pinned": pinned,
		"pinned_by": nil,
		"pinned_at": nil,
	}
	if pinned {
		fields["pinned_by"] = by
		fields["pinned_at"] = at
	}
	res := r.DB.WithContext(ctx).Model(&models.Message{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *MessageRepositoryImpl) ToggleReaction(ctx context.Context, messageID, userID, reaction string, at int64) (bool, error) {
	set := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.MessageReaction
		err := tx.Where("message_id = ? AND user_id = ? AND reaction = ?", messageID, userID, reaction).
			First(&existing).Error
		switch {
		case err == nil:
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			// a concurrent toggle that already inserted the row still leaves it set
			set = true
			return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.MessageReaction{
				MessageID: messageID,
				UserID:    userID,
				Reaction:  reaction,
				Timestamp: at,
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, err
	}
	return set, nil
}
