package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/storage"
)

type eventRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewEventRepo(db *pgxpool.Pool, log logger.ILogger) storage.IEventStorage {
	return &eventRepo{db: db, log: log}
}

const eventColumns = "e.id, e.driver_id, e.vehicle_id, e.ts, e.fatigue_level, e.fatigue_type, e.eye_closure_duration, e.yawn_count, e.blink_rate"

// eventJoins left-joins the denormalized text ids to the entity tables so
// name/plate filters can apply. Events with dangling ids still match.
const eventJoins = " LEFT JOIN drivers d ON d.id::text = e.driver_id LEFT JOIN vehicles v ON v.id::text = e.vehicle_id"

func scanEvent(row pgx.Row) (*models.VehicleEvent, error) {
	var e models.VehicleEvent
	err := row.Scan(&e.ID, &e.DriverID, &e.VehicleID, &e.Timestamp, &e.FatigueLevel, &e.FatigueType,
		&e.EyeClosureDuration, &e.YawnCount, &e.BlinkRate)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepo) Create(ctx context.Context, event *models.VehicleEvent) (*models.VehicleEvent, error) {
	query := `
		INSERT INTO vehicle_events (driver_id, vehicle_id, ts, fatigue_level, fatigue_type, eye_closure_duration, yawn_count, blink_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		event.DriverID, event.VehicleID, event.Timestamp, event.FatigueLevel, event.FatigueType,
		event.EyeClosureDuration, event.YawnCount, event.BlinkRate,
	).Scan(&event.ID)
	if err != nil {
		r.log.Error("failed to create vehicle event", logger.Error(err))
		return nil, err
	}
	return event, nil
}

func (r *eventRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.VehicleEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM vehicle_events e WHERE e.id = $1`
	e, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get event by id", logger.Error(err))
		return nil, err
	}
	return e, nil
}

func (r *eventRepo) List(ctx context.Context, filter models.EventFilter, page models.PageRequest) ([]*models.VehicleEvent, int64, error) {
	page = page.Normalize()
	b := eventFilterWhere(filter)

	var total int64
	countQuery := `SELECT count(*) FROM vehicle_events e` + eventJoins + b.clause()
	if err := r.db.QueryRow(ctx, countQuery, b.args...).Scan(&total); err != nil {
		r.log.Error("failed to count events", logger.Error(err))
		return nil, 0, err
	}

	suffix, args := paginate(b, "e.ts DESC", page)
	query := `SELECT ` + eventColumns + ` FROM vehicle_events e` + eventJoins + b.clause() + suffix
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list events", logger.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var events []*models.VehicleEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepo) CountByType(ctx context.Context, start, end time.Time) (map[models.FatigueType]int64, error) {
	query := `
		SELECT e.fatigue_type, count(*)
		FROM vehicle_events e
		WHERE e.ts >= $1 AND e.ts <= $2
		GROUP BY e.fatigue_type
	`
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		r.log.Error("failed to count events by type", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	dist := make(map[models.FatigueType]int64)
	for rows.Next() {
		var ft models.FatigueType
		var count int64
		if err := rows.Scan(&ft, &count); err != nil {
			return nil, err
		}
		dist[ft] = count
	}
	return dist, rows.Err()
}

func (r *eventRepo) TopDriversByCount(ctx context.Context, start, end time.Time, limit int) ([]*models.TopDriver, error) {
	query := `
		SELECT e.driver_id, count(*) AS alerts
		FROM vehicle_events e
		WHERE e.ts >= $1 AND e.ts <= $2
		GROUP BY e.driver_id
		ORDER BY alerts DESC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, start, end, limit)
	if err != nil {
		r.log.Error("failed to rank drivers by event count", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var top []*models.TopDriver
	for rows.Next() {
		var t models.TopDriver
		if err := rows.Scan(&t.DriverID, &t.Count); err != nil {
			return nil, err
		}
		top = append(top, &t)
	}
	return top, rows.Err()
}

func (r *eventRepo) CountByDay(ctx context.Context, level models.FatigueLevel, start, end time.Time) ([]*models.TimelinePoint, error) {
	query := `
		SELECT date_trunc('day', e.ts) AS day, count(*)
		FROM vehicle_events e
		WHERE e.fatigue_level = $1 AND e.ts >= $2 AND e.ts <= $3
		GROUP BY day
		ORDER BY day ASC
	`
	rows, err := r.db.Query(ctx, query, level, start, end)
	if err != nil {
		r.log.Error("failed to count events by day", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var points []*models.TimelinePoint
	for rows.Next() {
		var p models.TimelinePoint
		if err := rows.Scan(&p.Date, &p.Count); err != nil {
			return nil, err
		}
		points = append(points, &p)
	}
	return points, rows.Err()
}
