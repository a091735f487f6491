package service

import (
	"context"

	"github.com/google/uuid"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/storage"
)

type VehicleService interface {
	Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	List(ctx context.Context, filter models.VehicleFilter, page models.PageRequest) (models.Page[*models.Vehicle], error)
	Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	AssignDriver(ctx context.Context, vehicleID, driverID uuid.UUID) (*models.Vehicle, error)
	UnassignDriver(ctx context.Context, vehicleID uuid.UUID) (*models.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type vehicleService struct {
	stg     storage.IVehicleStorage
	drivers storage.IDriverStorage
	log     logger.ILogger
}

func NewVehicleService(stg storage.IStorage, log logger.ILogger) VehicleService {
	return &vehicleService{
		stg:     stg.Vehicle(),
		drivers: stg.Driver(),
		log:     log,
	}
}

func (s *vehicleService) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if vehicle.Plate == "" {
		return nil, apperrors.Validation("vehicle plate is required")
	}
	if err := s.checkDriverExists(ctx, vehicle.DriverID); err != nil {
		return nil, err
	}
	vehicle.Active = true
	return s.stg.Create(ctx, vehicle)
}

func (s *vehicleService) GetByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	vehicle, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperrors.NotFound("vehicle %s", id)
	}
	return vehicle, nil
}

func (s *vehicleService) List(ctx context.Context, filter models.VehicleFilter, page models.PageRequest) (models.Page[*models.Vehicle], error) {
	page = page.Normalize()
	vehicles, total, err := s.stg.List(ctx, filter, page)
	if err != nil {
		return models.Page[*models.Vehicle]{}, err
	}
	return models.NewPage(vehicles, page, total), nil
}

func (s *vehicleService) Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if err := s.checkDriverExists(ctx, vehicle.DriverID); err != nil {
		return nil, err
	}
	updated, err := s.stg.Update(ctx, vehicle)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NotFound("vehicle %s", vehicle.ID)
	}
	return updated, nil
}

func (s *vehicleService) AssignDriver(ctx context.Context, vehicleID, driverID uuid.UUID) (*models.Vehicle, error) {
	if _, err := s.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	if err := s.checkDriverExists(ctx, &driverID); err != nil {
		return nil, err
	}
	if err := s.stg.SetDriver(ctx, vehicleID, &driverID); err != nil {
		return nil, err
	}
	s.log.Info("driver assigned to vehicle",
		logger.String("vehicle_id", vehicleID.String()),
		logger.String("driver_id", driverID.String()),
	)
	return s.GetByID(ctx, vehicleID)
}

func (s *vehicleService) UnassignDriver(ctx context.Context, vehicleID uuid.UUID) (*models.Vehicle, error) {
	if _, err := s.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	if err := s.stg.SetDriver(ctx, vehicleID, nil); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, vehicleID)
}

func (s *vehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleting vehicle", logger.String("id", id.String()))
	return s.stg.Delete(ctx, id)
}

func (s *vehicleService) checkDriverExists(ctx context.Context, driverID *uuid.UUID) error {
	if driverID == nil {
		return nil
	}
	driver, err := s.drivers.GetByID(ctx, *driverID)
	if err != nil {
		return err
	}
	if driver == nil {
		return apperrors.NotFound("driver %s", *driverID)
	}
	return nil
}
