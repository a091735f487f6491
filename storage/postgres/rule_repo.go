package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/storage"
)

type ruleRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewRuleRepo(db *pgxpool.Pool, log logger.ILogger) storage.IRuleStorage {
	return &ruleRepo{db: db, log: log}
}

const ruleColumns = "id, name, value, description, enabled, created_at, updated_at"

func scanRule(row pgx.Row) (*models.Rule, error) {
	var rl models.Rule
	err := row.Scan(&rl.ID, &rl.Name, &rl.Value, &rl.Description, &rl.Enabled, &rl.CreatedAt, &rl.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rl, nil
}

func (r *ruleRepo) Create(ctx context.Context, rule *models.Rule) (*models.Rule, error) {
	query := `
		INSERT INTO rules (name, value, description, enabled)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, rule.Name, rule.Value, rule.Description, rule.Enabled).Scan(
		&rule.ID, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Duplicate("rule with name %s already exists", rule.Name)
		}
		r.log.Error("failed to create rule", logger.Error(err))
		return nil, err
	}
	return rule, nil
}

func (r *ruleRepo) GetByName(ctx context.Context, name string) (*models.Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM rules WHERE name = $1`
	rl, err := scanRule(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get rule by name", logger.Error(err))
		return nil, err
	}
	return rl, nil
}

func (r *ruleRepo) GetAll(ctx context.Context) ([]*models.Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM rules ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list rules", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var rules []*models.Rule
	for rows.Next() {
		rl, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rl)
	}
	return rules, rows.Err()
}

func (r *ruleRepo) Update(ctx context.Context, rule *models.Rule) (*models.Rule, error) {
	query := `
		UPDATE rules
		SET name = $1, value = $2, description = $3, enabled = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, rule.Name, rule.Value, rule.Description, rule.Enabled, rule.ID).Scan(&rule.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, apperrors.Duplicate("rule with name %s already exists", rule.Name)
		}
		r.log.Error("failed to update rule", logger.Error(err))
		return nil, err
	}
	return rule, nil
}

func (r *ruleRepo) Delete(ctx context.Context, name string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rules WHERE name = $1`, name)
	if err != nil {
		r.log.Error("failed to delete rule", logger.Error(err))
	}
	return err
}
