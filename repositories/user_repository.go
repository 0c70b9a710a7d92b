package repositories

import (
	"TeamChat/models"
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// ListWithPushTokens returns every user that has a push token, except excludeID.
	ListWithPushTokens(ctx context.Context, excludeID string) ([]models.User, error)
}
