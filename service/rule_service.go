package service

import (
	"context"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/storage"
)

// RuleService manages the detection thresholds the edge collaborator reads
// by name, e.g. "EAR_THRESHOLD" -> "0.24".
type RuleService interface {
	Create(ctx context.Context, rule *models.Rule) (*models.Rule, error)
	GetByName(ctx context.Context, name string) (*models.Rule, error)
	GetAll(ctx context.Context) ([]*models.Rule, error)
	Update(ctx context.Context, name string, rule *models.Rule) (*models.Rule, error)
	Delete(ctx context.Context, name string) error
}

type ruleService struct {
	stg storage.IRuleStorage
	log logger.ILogger
}

func NewRuleService(stg storage.IStorage, log logger.ILogger) RuleService {
	return &ruleService{
		stg: stg.Rule(),
		log: log,
	}
}

func (s *ruleService) Create(ctx context.Context, rule *models.Rule) (*models.Rule, error) {
	if rule.Name == "" || rule.Value == "" {
		return nil, apperrors.Validation("rule name and value are required")
	}
	created, err := s.stg.Create(ctx, rule)
	if err != nil {
		return nil, err
	}
	s.log.Info("rule created", logger.String("name", created.Name), logger.String("value", created.Value))
	return created, nil
}

func (s *ruleService) GetByName(ctx context.Context, name string) (*models.Rule, error) {
	rule, err := s.stg.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, apperrors.NotFound("rule %s", name)
	}
	return rule, nil
}

func (s *ruleService) GetAll(ctx context.Context) ([]*models.Rule, error) {
	return s.stg.GetAll(ctx)
}

// Update modifies the rule currently stored under name. A rename keeps the
// name-uniqueness invariant through the store's constraint.
func (s *ruleService) Update(ctx context.Context, name string, rule *models.Rule) (*models.Rule, error) {
	existing, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	existing.Name = rule.Name
	existing.Value = rule.Value
	existing.Description = rule.Description
	existing.Enabled = rule.Enabled

	updated, err := s.stg.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NotFound("rule %s", name)
	}
	s.log.Info("rule updated", logger.String("name", updated.Name))
	return updated, nil
}

func (s *ruleService) Delete(ctx context.Context, name string) error {
	if _, err := s.GetByName(ctx, name); err != nil {
		return err
	}
	s.log.Info("deleting rule", logger.String("name", name))
	return s.stg.Delete(ctx, name)
}
