package state

import "github.com/example/revisionbot/pkg/models"

// ToggleReviewComplete flips the completion of a review.
func (m *Mutator) ToggleReviewComplete(cfg models.PlannerConfig, reviewID string) models.PlannerConfig {
	for i, r := range cfg.Reviews {
		if r.ID != reviewID {
			continue
		}
		r.Completed = !r.Completed
		cfg.Reviews = replaced(cfg.Reviews, i, r)
		return cfg
	}
	return cfg
}
