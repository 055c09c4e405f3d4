package state

import (
	"fmt"

	"github.com/example/revisionbot/internal/notify"
	"github.com/example/revisionbot/pkg/models"
)

// AddSubject appends a new empty subject.
func (m *Mutator) AddSubject(cfg models.PlannerConfig, name string) models.PlannerConfig {
	next, _ := m.AddSubjectWithID(cfg, name)
	return next
}

// AddSubjectWithID is AddSubject that also reports the id it minted.
func (m *Mutator) AddSubjectWithID(cfg models.PlannerConfig, name string) (models.PlannerConfig, string) {
	subject := models.Subject{ID: m.newID(), Name: name, Topics: []models.Topic{}}
	cfg.Subjects = appended(cfg.Subjects, subject)
	m.notifier.Notify(fmt.Sprintf("Added subject %q", name), notify.Success)
	return cfg, subject.ID
}

// UpdateSubject renames a subject. Reviews keep the name they were created
// with.
func (m *Mutator) UpdateSubject(cfg models.PlannerConfig, subjectID, name string) models.PlannerConfig {
	i := cfg.FindSubject(subjectID)
	if i < 0 {
		return cfg
	}
	subject := cfg.Subjects[i]
	subject.Name = name
	cfg.Subjects = replaced(cfg.Subjects, i, subject)
	return cfg
}

// RemoveSubject deletes a subject together with its topics. Reviews and
// study sessions that reference it are kept as history.
func (m *Mutator) RemoveSubject(cfg models.PlannerConfig, subjectID string) models.PlannerConfig {
	i := cfg.FindSubject(subjectID)
	if i < 0 {
		return cfg
	}
	name := cfg.Subjects[i].Name
	cfg.Subjects = filtered(cfg.Subjects, func(s models.Subject) bool { return s.ID != subjectID })
	m.notifier.Notify(fmt.Sprintf("Removed subject %q", name), notify.Info)
	return cfg
}
