package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/revisionbot/pkg/models"
)

// keyValue is the storage the planner record is kept in.
type keyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ConfigRepository persists the planner record as one JSON document under a
// fixed key.
type ConfigRepository struct {
	kv  keyValue
	key string
}

// NewConfigRepository creates a repository storing under key.
func NewConfigRepository(kv keyValue, key string) *ConfigRepository {
	return &ConfigRepository{kv: kv, key: key}
}

// Load returns the stored planner. ErrNotFound means nothing was saved yet;
// any other error means the record could not be read or decoded.
func (r *ConfigRepository) Load(ctx context.Context) (models.PlannerConfig, error) {
	raw, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return models.PlannerConfig{}, err
	}

	var cfg models.PlannerConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return models.PlannerConfig{}, fmt.Errorf("database: decode planner record: %w", err)
	}
	return cfg.Normalized(), nil
}

// Save replaces the stored planner.
func (r *ConfigRepository) Save(ctx context.Context, cfg models.PlannerConfig) error {
	raw, err := json.Marshal(cfg.Normalized())
	if err != nil {
		return fmt.Errorf("database: encode planner record: %w", err)
	}
	return r.kv.Set(ctx, r.key, string(raw))
}
