package state

import (
	"fmt"

	"github.com/example/revisionbot/internal/notify"
	"github.com/example/revisionbot/pkg/models"
)

// AddStudySession logs minutes of focused study against a subject, dated
// today. The subject id is not checked so that time logged by a timer that
// outlived its subject is still counted.
func (m *Mutator) AddStudySession(cfg models.PlannerConfig, subjectID string, minutes int) models.PlannerConfig {
	cfg.StudySessions = appended(cfg.StudySessions, models.StudySession{
		ID:        m.newID(),
		Date:      m.Today(),
		SubjectID: subjectID,
		Duration:  minutes,
	})
	m.notifier.Notify(fmt.Sprintf("Logged %d min of focus", minutes), notify.Success)
	return cfg
}
