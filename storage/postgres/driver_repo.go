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

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

const driverColumns = "d.id, d.name, d.license, d.birth_date, d.active, d.created_at, d.updated_at"

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(&d.ID, &d.Name, &d.License, &d.BirthDate, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepo) Create(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	query := `
		INSERT INTO drivers (name, license, birth_date, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, driver.Name, driver.License, driver.BirthDate, driver.Active).Scan(
		&driver.ID, &driver.CreatedAt, &driver.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Duplicate("driver with license %s already exists", driver.License)
		}
		r.log.Error("failed to create driver", logger.Error(err))
		return nil, err
	}
	return driver, nil
}

func (r *driverRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers d WHERE d.id = $1`
	d, err := scanDriver(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get driver by id", logger.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) List(ctx context.Context, filter models.DriverFilter, page models.PageRequest) ([]*models.Driver, int64, error) {
	page = page.Normalize()
	b := driverFilterWhere(filter)

	var total int64
	countQuery := `SELECT count(*) FROM drivers d` + b.clause()
	if err := r.db.QueryRow(ctx, countQuery, b.args...).Scan(&total); err != nil {
		r.log.Error("failed to count drivers", logger.Error(err))
		return nil, 0, err
	}

	suffix, args := paginate(b, "d.name", page)
	query := `SELECT ` + driverColumns + ` FROM drivers d` + b.clause() + suffix
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list drivers", logger.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var drivers []*models.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, 0, err
		}
		drivers = append(drivers, d)
	}
	return drivers, total, rows.Err()
}

func (r *driverRepo) Update(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	query := `
		UPDATE drivers
		SET name = $1, license = $2, birth_date = $3, active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		driver.Name, driver.License, driver.BirthDate, driver.Active, driver.ID,
	).Scan(&driver.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, apperrors.Duplicate("driver with license %s already exists", driver.License)
		}
		r.log.Error("failed to update driver", logger.Error(err))
		return nil, err
	}
	return driver, nil
}

func (r *driverRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete driver", logger.Error(err))
	}
	return err
}
