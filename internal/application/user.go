package app

import (
	"context"
	"fmt"

	"waterseg-bot/internal/domain/entity"
	"waterseg-bot/internal/domain/port"
)

// UserService ведёт состояние диалога пользователя с ботом.
type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	if err := s.repo.UpdateState(ctx, userID, state); err == nil {
		return s.repo.Get(ctx, userID, chatID)
	}

	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user %d: %w", userID, err)
	}
	return user, nil
}

// BeginUpload переводит пользователя в ожидание файла снимка.
func (s *UserService) BeginUpload(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingRaster)
}

// Cancel возвращает пользователя в главное меню.
func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}
