package service

import (
	"context"

	"github.com/google/uuid"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/storage"
)

type NotificationService interface {
	Create(ctx context.Context, userID uuid.UUID, message string) (*models.Notification, error)
	SupervisoryUsers(ctx context.Context) ([]*models.User, error)
	List(ctx context.Context, userID uuid.UUID, page models.PageRequest) (models.Page[*models.Notification], error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id int64, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type notificationService struct {
	stg   storage.INotificationStorage
	users storage.IUserStorage
	log   logger.ILogger
}

func NewNotificationService(stg storage.IStorage, log logger.ILogger) NotificationService {
	return &notificationService{
		stg:   stg.Notification(),
		users: stg.User(),
		log:   log,
	}
}

func (s *notificationService) Create(ctx context.Context, userID uuid.UUID, message string) (*models.Notification, error) {
	return s.stg.Create(ctx, userID, message)
}

// SupervisoryUsers returns the active users entitled to fatigue alerts.
func (s *notificationService) SupervisoryUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.GetByRoles(ctx, models.SupervisoryRoles)
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, page models.PageRequest) (models.Page[*models.Notification], error) {
	page = page.Normalize()
	notifications, total, err := s.stg.ListByUser(ctx, userID, page)
	if err != nil {
		return models.Page[*models.Notification]{}, err
	}
	return models.NewPage(notifications, page, total), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.stg.CountUnread(ctx, userID)
}

// MarkRead flips a single notification. Only the owner may do it.
func (s *notificationService) MarkRead(ctx context.Context, id int64, userID uuid.UUID) error {
	notification, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return apperrors.NotFound("notification %d", id)
	}
	if notification.UserID != userID {
		return apperrors.PermissionDenied("notification %d belongs to another user", id)
	}
	return s.stg.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	flipped, err := s.stg.MarkAllRead(ctx, userID)
	if err != nil {
		return err
	}
	s.log.Info("marked all notifications read",
		logger.String("user_id", userID.String()), logger.Int64("count", flipped))
	return nil
}
