package services

import (
	"context"
	"strings"

	"github.com/olenak/lingocards/internal/auth"
	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
)

// AuthService handles account registration and login
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

type authService struct {
	users repository.UserRepository
	jwt   *auth.JWTManager
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, jwt *auth.JWTManager) AuthService {
	return &authService{users: users, jwt: jwt}
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	log := logger.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))
	log.Debug("registering user: email=%s", email)

	if email == "" || !strings.Contains(email, "@") {
		return nil, "", errors.NewValidationError("email", "must be a valid email address")
	}
	if len(password) < 8 {
		return nil, "", errors.NewValidationError("password", "must be at least 8 characters")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to check for existing user: %v", err)
		return nil, "", errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, "", errors.NewConflictError("an account with this email already exists")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	user := models.User{Email: email, PasswordHash: hash, Name: strings.TrimSpace(name)}
	id, err := s.users.Insert(ctx, user)
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return nil, "", errors.NewInternalError(err)
	}
	user.ID = id

	token, err := s.jwt.GenerateAccessToken(id)
	if err != nil {
		log.Error("failed to generate token: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	log.Info("user registered: id=%d", id)
	return &user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	log := logger.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))
	log.Debug("login attempt: email=%s", email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to look up user: %v", err)
		return nil, "", errors.NewInternalError(err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", errors.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.jwt.GenerateAccessToken(user.ID)
	if err != nil {
		log.Error("failed to generate token: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	log.Info("user logged in: id=%d", user.ID)
	return user, token, nil
}

func (s *authService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}
	return user, nil
}
