package services

import (
	"TeamChat/models"
	"TeamChat/repositories"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type UpdateProfileInput struct {
	Name            *string `json:"name" validate:"omitempty,max=100"`
	Image           *string `json:"image" validate:"omitempty,url"`
	Phone           *string `json:"phone" validate:"omitempty,max=32"`
	Status          *string `json:"status" validate:"omitempty,oneof=available on-site in-meeting offline"`
	PushToken       *string `json:"pushToken" validate:"omitempty,max=4096"`
	CurrentLocation *string `json:"currentLocation" validate:"omitempty,max=255"`
}

type UserService struct {
	UserRepo repositories.UserRepository
	Now      func() int64
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// CurrentUser returns nil when the caller has no matching row.
func (s *UserService) CurrentUser(ctx context.Context, callerID string) (*models.User, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	user, err := s.UserRepo.FindByID(ctx, callerID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the non-nil fields and refreshes lastActive.
func (s *UserService) UpdateProfile(ctx context.Context, callerID string, input UpdateProfileInput) (models.User, error) {
	if callerID == "" {
		return models.User{}, ErrUnauthorized
	}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return models.User{}, fieldError("name", "is required")
		}
		input.Name = &trimmed
	}
	if err := validateStruct(input); err != nil {
		return models.User{}, err
	}

	fields := map[string]interface{}{"last_active": s.Now()}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Image != nil {
		fields["image"] = *input.Image
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.PushToken != nil {
		fields["push_token"] = *input.PushToken
	}
	if input.CurrentLocation != nil {
		fields["current_location"] = *input.CurrentLocation
	}

	if err := s.UserRepo.Update(ctx, callerID, fields); err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	return s.UserRepo.FindByID(ctx, callerID)
}
