package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mkravtsov/rental-platform/internal/auth"
	"github.com/mkravtsov/rental-platform/internal/model"
	"github.com/mkravtsov/rental-platform/internal/rental"
	"github.com/mkravtsov/rental-platform/internal/repository"
)

const minPasswordLength = 8

// IdentityService — регистрация и вход. Выдаёт JWT, которым остальные
// операции идентифицируют пользователя.
type IdentityService struct {
	userRepo  repository.UserRepository
	eventRepo repository.EventRepository
	auth      *auth.Service
	log       *logrus.Logger
}

func NewIdentityService(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	authSvc *auth.Service,
	log *logrus.Logger,
) *IdentityService {
	return &IdentityService{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		auth:      authSvc,
		log:       log,
	}
}

// Register создаёт пользователя с ролью customer и сразу выдаёт токен.
func (s *IdentityService) Register(
	ctx context.Context,
	username, password string,
) (*model.User, string, error) {
	if username == "" {
		return nil, "", fmt.Errorf("%w: username is required", rental.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters",
			rental.ErrInvalidInput, minPasswordLength)
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, "", rental.ErrUsernameTaken
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Role:         model.UserRoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("user registered")

	details, _ := json.Marshal(map[string]any{"username": username})
	event := &model.Event{
		ID:        uuid.New(),
		EventType: model.EventTypeUserRegistered,
		CreatedAt: now,
		UserID:    &user.ID,
		Details:   details,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.log.WithError(err).Warn("write audit event")
	}

	return user, token, nil
}

// Login проверяет пароль и выдаёт токен.
func (s *IdentityService) Login(
	ctx context.Context,
	username, password string,
) (*model.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Не раскрываем, существует ли пользователь.
		return nil, "", rental.ErrInvalidCredentials
	}

	if !s.auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", rental.ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}
