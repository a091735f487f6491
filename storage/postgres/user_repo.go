package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/storage"
)

type userRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewUserRepo(db *pgxpool.Pool, log logger.ILogger) storage.IUserStorage {
	return &userRepo{db: db, log: log}
}

const userColumns = "u.id, u.name, u.email, u.password_hash, u.role, u.active, u.reset_token, u.reset_expiry, u.created_at, u.updated_at"

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Active,
		&u.ResetToken, &u.ResetExpiry, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, role, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, user.Role, user.Active).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Duplicate("user with email %s already exists", user.Email)
		}
		r.log.Error("failed to create user", logger.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get user by id", logger.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE LOWER(u.email) = LOWER($1)`
	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get user by email", logger.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *userRepo) GetByResetToken(ctx context.Context, resetToken string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.reset_token = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, resetToken))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get user by reset token", logger.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *userRepo) GetByRoles(ctx context.Context, roles []models.Role) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.role = ANY($1) AND u.active`
	roleStrings := make([]string, 0, len(roles))
	for _, role := range roles {
		roleStrings = append(roleStrings, string(role))
	}
	rows, err := r.db.Query(ctx, query, roleStrings)
	if err != nil {
		r.log.Error("failed to get users by roles", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepo) List(ctx context.Context, filter models.UserFilter, page models.PageRequest) ([]*models.User, int64, error) {
	page = page.Normalize()
	b := userFilterWhere(filter)

	var total int64
	countQuery := `SELECT count(*) FROM users u` + b.clause()
	if err := r.db.QueryRow(ctx, countQuery, b.args...).Scan(&total); err != nil {
		r.log.Error("failed to count users", logger.Error(err))
		return nil, 0, err
	}

	suffix, args := paginate(b, "u.name", page)
	query := `SELECT ` + userColumns + ` FROM users u` + b.clause() + suffix
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list users", logger.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *userRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		UPDATE users
		SET name = $1, email = $2, role = $3, active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.Role, user.Active, user.ID).Scan(&user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, apperrors.Duplicate("user with email %s already exists", user.Email)
		}
		r.log.Error("failed to update user", logger.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		r.log.Error("failed to update user password", logger.Error(err))
	}
	return err
}

func (r *userRepo) SetResetToken(ctx context.Context, id uuid.UUID, resetToken string, expiry time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET reset_token = $1, reset_expiry = $2, updated_at = NOW() WHERE id = $3`,
		resetToken, expiry, id,
	)
	if err != nil {
		r.log.Error("failed to set reset token", logger.Error(err))
	}
	return err
}

func (r *userRepo) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET reset_token = NULL, reset_expiry = NULL, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		r.log.Error("failed to clear reset token", logger.Error(err))
	}
	return err
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete user", logger.Error(err))
	}
	return err
}
