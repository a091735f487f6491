package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/pkg/timeutil"
	"safetrack/storage"
)

// Default windows are expressed as whole days back from today, so the
// distribution lookback covers today plus the previous 30 calendar days
// and the timeline covers the trailing week.
const (
	distributionLookbackDays = 30
	timelineLookbackDays     = 6
	defaultTopDriversLimit   = 5
)

type AnalyticsService interface {
	DistributionByType(ctx context.Context, start, end *time.Time) (map[models.FatigueType]int64, error)
	TopDrivers(ctx context.Context, start, end *time.Time, limit int) ([]*models.TopDriver, error)
	CriticalTimeline(ctx context.Context, start, end *time.Time) ([]*models.TimelinePoint, error)
}

type analyticsService struct {
	events  storage.IEventStorage
	drivers storage.IDriverStorage
	log     logger.ILogger
}

func NewAnalyticsService(stg storage.IStorage, log logger.ILogger) AnalyticsService {
	return &analyticsService{
		events:  stg.Event(),
		drivers: stg.Driver(),
		log:     log,
	}
}

func (s *analyticsService) DistributionByType(ctx context.Context, start, end *time.Time) (map[models.FatigueType]int64, error) {
	lo, hi := window(start, end, distributionLookbackDays)
	return s.events.CountByType(ctx, lo, hi)
}

func (s *analyticsService) TopDrivers(ctx context.Context, start, end *time.Time, limit int) ([]*models.TopDriver, error) {
	if limit <= 0 {
		limit = defaultTopDriversLimit
	}
	lo, hi := window(start, end, distributionLookbackDays)
	top, err := s.events.TopDriversByCount(ctx, lo, hi, limit)
	if err != nil {
		return nil, err
	}
	for _, t := range top {
		t.DriverName = s.resolveDriverName(ctx, t.DriverID)
	}
	return top, nil
}

// CriticalTimeline counts only the highest-severity events per day.
func (s *analyticsService) CriticalTimeline(ctx context.Context, start, end *time.Time) ([]*models.TimelinePoint, error) {
	lo, hi := window(start, end, timelineLookbackDays)
	return s.events.CountByDay(ctx, models.FatigueHigh, lo, hi)
}

// window resolves optional calendar-date bounds to an inclusive UTC
// timestamp range. A missing start falls back to lookbackDays days before
// today; a missing end means "through today".
func window(start, end *time.Time, lookbackDays int) (time.Time, time.Time) {
	now := time.Now()
	lo := timeutil.DaysAgoUTC(now, lookbackDays)
	if start != nil {
		lo = timeutil.StartOfDayUTC(*start)
	}
	hi := timeutil.EndOfDayUTC(now)
	if end != nil {
		hi = timeutil.EndOfDayUTC(*end)
	}
	return lo, hi
}

func (s *analyticsService) resolveDriverName(ctx context.Context, rawID string) string {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return models.UnknownDriverName
	}
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil || driver == nil {
		return models.UnknownDriverName
	}
	return driver.Name
}
