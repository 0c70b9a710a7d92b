package services

import (
	"TeamChat/models"
	"TeamChat/repositories"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
)

type SignUpInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type AuthService struct {
	UserRepo repositories.UserRepository
	Tokens   *TokenManager
}

func NewAuthService(userRepo repositories.UserRepository, tokens *TokenManager) *AuthService {
	return &AuthService{UserRepo: userRepo, Tokens: tokens}
}

// SignUp creates an account. Signing up again with an existing email and
// the matching password returns that account.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if err := validateStruct(input); err != nil {
		return AuthResult{}, err
	}

	existing, err := s.UserRepo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(input.Password)) != nil {
			return AuthResult{}, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return s.issue(existing)
	case !errors.Is(err, ErrNotFound):
		return AuthResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	privilege := models.PrivilegeAdmin
	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Privilege:    &privilege,
	}
	if err := s.UserRepo.Create(ctx, &user); err != nil {
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return s.issue(user)
}

func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (AuthResult, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validateStruct(input); err != nil {
		return AuthResult{}, err
	}

	user, err := s.UserRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, ErrNotFound) {
		return AuthResult{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if err != nil {
		return AuthResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return AuthResult{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	return s.issue(user)
}

func (s *AuthService) issue(user models.User) (AuthResult, error) {
	token, err := s.Tokens.GenerateToken(user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}
	return AuthResult{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
