package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/storage"
)

type vehicleRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewVehicleRepo(db *pgxpool.Pool, log logger.ILogger) storage.IVehicleStorage {
	return &vehicleRepo{db: db, log: log}
}

const vehicleColumns = "v.id, v.plate, v.make, v.model, v.year, v.active, v.driver_id, v.created_at, v.updated_at"

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(&v.ID, &v.Plate, &v.Make, &v.Model, &v.Year, &v.Active, &v.DriverID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	query := `
		INSERT INTO vehicles (plate, make, model, year, active, driver_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		vehicle.Plate, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.Active, vehicle.DriverID,
	).Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Duplicate("vehicle with plate %s already exists", vehicle.Plate)
		}
		r.log.Error("failed to create vehicle", logger.Error(err))
		return nil, err
	}
	return vehicle, nil
}

func (r *vehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles v WHERE v.id = $1`
	v, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get vehicle by id", logger.Error(err))
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepo) List(ctx context.Context, filter models.VehicleFilter, page models.PageRequest) ([]*models.Vehicle, int64, error) {
	page = page.Normalize()
	b := vehicleFilterWhere(filter)

	var total int64
	countQuery := `SELECT count(*) FROM vehicles v` + b.clause()
	if err := r.db.QueryRow(ctx, countQuery, b.args...).Scan(&total); err != nil {
		r.log.Error("failed to count vehicles", logger.Error(err))
		return nil, 0, err
	}

	suffix, args := paginate(b, "v.plate", page)
	query := `SELECT ` + vehicleColumns + ` FROM vehicles v` + b.clause() + suffix
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list vehicles", logger.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, total, rows.Err()
}

func (r *vehicleRepo) Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	query := `
		UPDATE vehicles
		SET plate = $1, make = $2, model = $3, year = $4, active = $5, driver_id = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		vehicle.Plate, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.Active, vehicle.DriverID, vehicle.ID,
	).Scan(&vehicle.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, apperrors.Duplicate("vehicle with plate %s already exists", vehicle.Plate)
		}
		r.log.Error("failed to update vehicle", logger.Error(err))
		return nil, err
	}
	return vehicle, nil
}

func (r *vehicleRepo) SetDriver(ctx context.Context, vehicleID uuid.UUID, driverID *uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE vehicles SET driver_id = $1, updated_at = NOW() WHERE id = $2`,
		driverID, vehicleID,
	)
	if err != nil {
		r.log.Error("failed to set vehicle driver", logger.Error(err))
	}
	return err
}

func (r *vehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete vehicle", logger.Error(err))
	}
	return err
}
