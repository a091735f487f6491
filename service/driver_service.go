package service

import (
	"context"

	"github.com/google/uuid"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/storage"
)

type DriverService interface {
	Create(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error)
	List(ctx context.Context, filter models.DriverFilter, page models.PageRequest) (models.Page[*models.Driver], error)
	Update(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Driver, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type driverService struct {
	stg storage.IDriverStorage
	log logger.ILogger
}

func NewDriverService(stg storage.IStorage, log logger.ILogger) DriverService {
	return &driverService{
		stg: stg.Driver(),
		log: log,
	}
}

func (s *driverService) Create(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	if driver.Name == "" || driver.License == "" {
		return nil, apperrors.Validation("driver name and license are required")
	}
	driver.Active = true
	return s.stg.Create(ctx, driver)
}

func (s *driverService) GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	driver, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, apperrors.NotFound("driver %s", id)
	}
	return driver, nil
}

func (s *driverService) List(ctx context.Context, filter models.DriverFilter, page models.PageRequest) (models.Page[*models.Driver], error) {
	page = page.Normalize()
	drivers, total, err := s.stg.List(ctx, filter, page)
	if err != nil {
		return models.Page[*models.Driver]{}, err
	}
	return models.NewPage(drivers, page, total), nil
}

func (s *driverService) Update(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	updated, err := s.stg.Update(ctx, driver)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NotFound("driver %s", driver.ID)
	}
	return updated, nil
}

// SetActive soft-deactivates (or reactivates) a driver; the normal
// lifecycle never hard-deletes.
func (s *driverService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Driver, error) {
	driver, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	driver.Active = active
	return s.Update(ctx, driver)
}

func (s *driverService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleting driver", logger.String("id", id.String()))
	return s.stg.Delete(ctx, id)
}
