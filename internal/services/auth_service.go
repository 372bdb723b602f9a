package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hinagiku/taskboard-api/internal/auth"
	"github.com/hinagiku/taskboard-api/internal/models"
	"github.com/hinagiku/taskboard-api/internal/repository"
	"github.com/hinagiku/taskboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("incorrect email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotAdmin             = errors.New("not enough permissions")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, authentication, and account management.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// Register creates a new user. The email check runs before the username check,
// so when both are taken the email conflict is the one reported.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	username := strings.TrimSpace(input.Username)

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the user together with a fresh
// access token. Deactivated accounts are rejected the same way as bad
// credentials.
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !auth.VerifyPassword(input.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// ListUsers returns all users. Restricted to admin accounts.
func (s *AuthService) ListUsers(actor *models.User, params utils.PaginationParams) ([]models.User, error) {
	if !actor.IsAdmin {
		return nil, ErrNotAdmin
	}

	users, err := s.userRepo.List(params)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// UpdateProfileInput represents a partial self-service profile update.
// Nil fields are left untouched.
type UpdateProfileInput struct {
	Email    *string
	Username *string
	Password *string
}

// UpdateProfile applies the provided fields to the user's own account.
// A supplied password is re-hashed before storage.
func (s *AuthService) UpdateProfile(user *models.User, input UpdateProfileInput) (*models.User, error) {
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email != user.Email {
			if _, err := s.userRepo.FindByEmail(email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
		}
	}
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username != user.Username {
			if _, err := s.userRepo.FindByUsername(username); err == nil {
				return nil, ErrUsernameTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check username: %w", err)
			}
			user.Username = username
		}
	}
	if input.Password != nil {
		hashedPassword, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = hashedPassword
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteAccount removes the user's account. Tasks they created, comments they
// authored, and assignments referencing them are removed in the same
// transaction.
func (s *AuthService) DeleteAccount(userID uint64) error {
	if err := s.userRepo.DeleteCascade(userID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
