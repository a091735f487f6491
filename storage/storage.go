package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"safetrack/pkg/models"
)

type IStorage interface {
	Driver() IDriverStorage
	Vehicle() IVehicleStorage
	Event() IEventStorage
	Rule() IRuleStorage
	User() IUserStorage
	Notification() INotificationStorage
	Close()
	GetPool() *pgxpool.Pool
}

// Getters return (nil, nil) when the row does not exist; services translate
// that into the NotFound taxonomy member.

type IDriverStorage interface {
	Create(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error)
	List(ctx context.Context, filter models.DriverFilter, page models.PageRequest) ([]*models.Driver, int64, error)
	Update(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type IVehicleStorage interface {
	Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	List(ctx context.Context, filter models.VehicleFilter, page models.PageRequest) ([]*models.Vehicle, int64, error)
	Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	SetDriver(ctx context.Context, vehicleID uuid.UUID, driverID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type IEventStorage interface {
	Create(ctx context.Context, event *models.VehicleEvent) (*models.VehicleEvent, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.VehicleEvent, error)
	List(ctx context.Context, filter models.EventFilter, page models.PageRequest) ([]*models.VehicleEvent, int64, error)
	CountByType(ctx context.Context, start, end time.Time) (map[models.FatigueType]int64, error)
	TopDriversByCount(ctx context.Context, start, end time.Time, limit int) ([]*models.TopDriver, error)
	CountByDay(ctx context.Context, level models.FatigueLevel, start, end time.Time) ([]*models.TimelinePoint, error)
}

type IRuleStorage interface {
	Create(ctx context.Context, rule *models.Rule) (*models.Rule, error)
	GetByName(ctx context.Context, name string) (*models.Rule, error)
	GetAll(ctx context.Context) ([]*models.Rule, error)
	Update(ctx context.Context, rule *models.Rule) (*models.Rule, error)
	Delete(ctx context.Context, name string) error
}

type IUserStorage interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, resetToken string) (*models.User, error)
	GetByRoles(ctx context.Context, roles []models.Role) ([]*models.User, error)
	List(ctx context.Context, filter models.UserFilter, page models.PageRequest) ([]*models.User, int64, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetResetToken(ctx context.Context, id uuid.UUID, resetToken string, expiry time.Time) error
	ClearResetToken(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type INotificationStorage interface {
	Create(ctx context.Context, userID uuid.UUID, message string) (*models.Notification, error)
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page models.PageRequest) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}
