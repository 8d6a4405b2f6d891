package services

import (
	"context"
	"errors"

	"plastwarehouse/internal/models"
	"plastwarehouse/internal/repositories"
)

type UserService interface {
	Register(ctx context.Context, user *models.BotUser) error
	List(ctx context.Context) ([]*models.BotUser, error)
}

type userService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Register(ctx context.Context, user *models.BotUser) error {
	if user.TgID == 0 {
		return errors.New("tg_id is required")
	}
	return s.repo.Upsert(ctx, user)
}

func (s *userService) List(ctx context.Context) ([]*models.BotUser, error) {
	return s.repo.List(ctx)
}
