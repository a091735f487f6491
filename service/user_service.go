package service

import (
	"context"

	"github.com/google/uuid"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/storage"
)

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter, page models.PageRequest) (models.Page[*models.User], error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	stg storage.IUserStorage
	log logger.ILogger
}

func NewUserService(stg storage.IStorage, log logger.ILogger) UserService {
	return &userService{
		stg: stg.User(),
		log: log,
	}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user %s", id)
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.stg.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user %s", email)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, filter models.UserFilter, page models.PageRequest) (models.Page[*models.User], error) {
	page = page.Normalize()
	users, total, err := s.stg.List(ctx, filter, page)
	if err != nil {
		return models.Page[*models.User]{}, err
	}
	return models.NewPage(users, page, total), nil
}

func (s *userService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if !user.Role.Valid() {
		return nil, apperrors.Validation("unknown role %q", user.Role)
	}
	updated, err := s.stg.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NotFound("user %s", user.ID)
	}
	return updated, nil
}

func (s *userService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Active = active
	return s.Update(ctx, user)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleting user", logger.String("id", id.String()))
	return s.stg.Delete(ctx, id)
}
