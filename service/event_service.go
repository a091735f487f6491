package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"safetrack/pkg/alert"
	"safetrack/pkg/apperrors"
	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/storage"
)

type EventService interface {
	Ingest(ctx context.Context, event *models.VehicleEvent) (*models.VehicleEventResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.VehicleEventResponse, error)
	List(ctx context.Context, filter models.EventFilter, page models.PageRequest) (models.Page[*models.VehicleEventResponse], error)
}

type eventService struct {
	events        storage.IEventStorage
	drivers       storage.IDriverStorage
	vehicles      storage.IVehicleStorage
	notifications NotificationService
	alerts        alert.Notifier
	log           logger.ILogger
}

func NewEventService(stg storage.IStorage, notifications NotificationService, alerts alert.Notifier, log logger.ILogger) EventService {
	return &eventService{
		events:        stg.Event(),
		drivers:       stg.Driver(),
		vehicles:      stg.Vehicle(),
		notifications: notifications,
		alerts:        alerts,
		log:           log,
	}
}

// Ingest persists the event exactly as the edge detector reported it and
// then fans a notification out to every supervisory user. Only the persist
// step can fail the operation: a lost driver lookup degrades to the unknown
// sentinel and a failed notification is logged and swallowed, because the
// event itself is already committed.
func (s *eventService) Ingest(ctx context.Context, event *models.VehicleEvent) (*models.VehicleEventResponse, error) {
	saved, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	driverName := s.resolveDriverName(ctx, saved.DriverID)

	message := fmt.Sprintf("%s alert for %s - level %s", saved.FatigueType, driverName, saved.FatigueLevel)
	s.fanOut(ctx, message)

	if saved.FatigueLevel == models.FatigueHigh {
		s.alerts.CriticalEvent(driverName, saved)
	}

	return &models.VehicleEventResponse{
		VehicleEvent: *saved,
		DriverName:   driverName,
		VehiclePlate: s.resolveVehiclePlate(ctx, saved.VehicleID),
	}, nil
}

func (s *eventService) fanOut(ctx context.Context, message string) {
	recipients, err := s.notifications.SupervisoryUsers(ctx)
	if err != nil {
		s.log.Error("fan-out aborted, cannot resolve supervisory users", logger.Error(err))
		return
	}
	delivered := 0
	for _, user := range recipients {
		if _, err := s.notifications.Create(ctx, user.ID, message); err != nil {
			s.log.Error("failed to create notification",
				logger.String("user_id", user.ID.String()), logger.Error(err))
			continue
		}
		delivered++
	}
	s.log.Info("fatigue event fanned out", logger.Int("notified", delivered))
}

func (s *eventService) GetByID(ctx context.Context, id uuid.UUID) (*models.VehicleEventResponse, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.NotFound("event %s", id)
	}
	return s.enrich(ctx, event), nil
}

func (s *eventService) List(ctx context.Context, filter models.EventFilter, page models.PageRequest) (models.Page[*models.VehicleEventResponse], error) {
	page = page.Normalize()
	events, total, err := s.events.List(ctx, filter, page)
	if err != nil {
		return models.Page[*models.VehicleEventResponse]{}, err
	}

	// Names repeat heavily within a page; resolve each id once.
	names := map[string]string{}
	plates := map[string]string{}
	responses := make([]*models.VehicleEventResponse, 0, len(events))
	for _, e := range events {
		name, ok := names[e.DriverID]
		if !ok {
			name = s.resolveDriverName(ctx, e.DriverID)
			names[e.DriverID] = name
		}
		plate, ok := plates[e.VehicleID]
		if !ok {
			plate = s.resolveVehiclePlate(ctx, e.VehicleID)
			plates[e.VehicleID] = plate
		}
		responses = append(responses, &models.VehicleEventResponse{
			VehicleEvent: *e,
			DriverName:   name,
			VehiclePlate: plate,
		})
	}
	return models.NewPage(responses, page, total), nil
}

func (s *eventService) enrich(ctx context.Context, event *models.VehicleEvent) *models.VehicleEventResponse {
	return &models.VehicleEventResponse{
		VehicleEvent: *event,
		DriverName:   s.resolveDriverName(ctx, event.DriverID),
		VehiclePlate: s.resolveVehiclePlate(ctx, event.VehicleID),
	}
}

func (s *eventService) resolveDriverName(ctx context.Context, rawID string) string {
	id, err := uuid.Parse(rawID)
	if err != nil {
		s.log.Warning("event carries unparseable driver id", logger.String("driver_id", rawID))
		return models.UnknownDriverName
	}
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil || driver == nil {
		return models.UnknownDriverName
	}
	return driver.Name
}

func (s *eventService) resolveVehiclePlate(ctx context.Context, rawID string) string {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return "N/A"
	}
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil || vehicle == nil {
		return "N/A"
	}
	return vehicle.Plate
}
