package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/revisionbot/pkg/models"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	cfg := models.DefaultConfig("2024-01-10")
	cfg.ExamDate = "2024-01-20"
	cfg.Subjects = []models.Subject{
		{ID: "math", Name: "Math", Topics: []models.Topic{
			{ID: "a", EstimatedHours: 3, Completed: true},
			{ID: "b", EstimatedHours: 2},
		}},
		{ID: "bio", Name: "Biology", Topics: []models.Topic{
			{ID: "c", EstimatedHours: 1.5},
		}},
		{ID: "chem", Name: "Chemistry"},
	}
	cfg.StudySessions = []models.StudySession{
		{SubjectID: "bio", Duration: 25},
		{SubjectID: "math", Duration: 50},
		{SubjectID: "gone", Duration: 15},
		{SubjectID: "math", Duration: 30},
	}
	cfg.Reviews = []models.ReviewItem{
		{ID: "r1", DueDate: "2024-01-09"},
		{ID: "r2", DueDate: "2024-01-12"},
		{ID: "r3", DueDate: "2024-01-01", Completed: true},
	}

	stats := Summarize(cfg, "2024-01-10")

	assert.Equal(t, 120, stats.TotalMinutes)
	assert.InDelta(t, 2.0, stats.TotalHours, 1e-9)

	require.Len(t, stats.BySubject, 2)
	assert.Equal(t, "Math", stats.BySubject[0].SubjectName)
	assert.Equal(t, 80, stats.BySubject[0].Minutes)
	assert.InDelta(t, 80.0/120.0, stats.BySubject[0].Share, 1e-9)
	assert.Equal(t, "Biology", stats.BySubject[1].SubjectName)

	assert.Equal(t, 3, stats.TopicsTotal)
	assert.Equal(t, 1, stats.TopicsCompleted)
	assert.InDelta(t, 3.5, stats.HoursRemaining, 1e-9)
	assert.Equal(t, 2, stats.PendingReviews)
	assert.Equal(t, 1, stats.DueReviews)
	assert.Equal(t, 10, stats.DaysUntilExam)
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	cfg := models.DefaultConfig("2024-01-10")
	cfg.ExamDate = "2024-01-01"

	stats := Summarize(cfg, "2024-01-10")

	assert.Zero(t, stats.TotalMinutes)
	assert.NotNil(t, stats.BySubject)
	assert.Empty(t, stats.BySubject)
	assert.Zero(t, stats.DaysUntilExam)
}
