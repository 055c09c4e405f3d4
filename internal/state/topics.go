package state

import (
	"fmt"

	"github.com/example/revisionbot/internal/notify"
	"github.com/example/revisionbot/internal/spaced_repetition"
	"github.com/example/revisionbot/pkg/models"
)

// AddTopic appends a topic to a subject with hours derived from its
// difficulty. Unknown subjects are ignored.
func (m *Mutator) AddTopic(cfg models.PlannerConfig, subjectID, name string, difficulty models.Difficulty) models.PlannerConfig {
	next, _ := m.AddTopicWithID(cfg, subjectID, name, difficulty)
	return next
}

// AddTopicWithID is AddTopic that also reports the id it minted. The id is
// empty when the subject does not exist.
func (m *Mutator) AddTopicWithID(cfg models.PlannerConfig, subjectID, name string, difficulty models.Difficulty) (models.PlannerConfig, string) {
	i := cfg.FindSubject(subjectID)
	if i < 0 {
		return cfg, ""
	}

	topic := models.Topic{
		ID:             m.newID(),
		Name:           name,
		EstimatedHours: difficulty.Hours(),
		Difficulty:     difficulty,
	}
	subject := cfg.Subjects[i]
	subject.Topics = appended(subject.Topics, topic)
	cfg.Subjects = replaced(cfg.Subjects, i, subject)

	m.notifier.Notify(fmt.Sprintf("Added topic %q to %s", name, subject.Name), notify.Success)
	return cfg, topic.ID
}

// UpdateTopic merges the non-nil fields of u into the topic. Changing the
// difficulty without giving hours resets the hours to the difficulty
// default.
func (m *Mutator) UpdateTopic(cfg models.PlannerConfig, subjectID, topicID string, u models.TopicUpdate) models.PlannerConfig {
	si, ti, ok := locate(cfg, subjectID, topicID)
	if !ok {
		return cfg
	}

	topic := cfg.Subjects[si].Topics[ti]
	if u.Name != nil {
		topic.Name = *u.Name
	}
	if u.Difficulty != nil {
		topic.Difficulty = *u.Difficulty
		if u.EstimatedHours == nil {
			topic.EstimatedHours = topic.Difficulty.Hours()
		}
	}
	if u.EstimatedHours != nil {
		topic.EstimatedHours = *u.EstimatedHours
	}
	return withTopic(cfg, si, ti, topic)
}

// RemoveTopic deletes a topic. Reviews and sessions that reference it are
// left alone.
func (m *Mutator) RemoveTopic(cfg models.PlannerConfig, subjectID, topicID string) models.PlannerConfig {
	si, ti, ok := locate(cfg, subjectID, topicID)
	if !ok {
		return cfg
	}

	subject := cfg.Subjects[si]
	name := subject.Topics[ti].Name
	subject.Topics = filtered(subject.Topics, func(t models.Topic) bool { return t.ID != topicID })
	cfg.Subjects = replaced(cfg.Subjects, si, subject)

	m.notifier.Notify(fmt.Sprintf("Removed topic %q", name), notify.Info)
	return cfg
}

// ToggleTopicComplete flips a topic's completion.
//
// Completing a hard or medium topic schedules a review 2 or 4 days out,
// unless the topic already has a pending review. Un-completing drops the
// topic's pending reviews; reviews already done are kept.
func (m *Mutator) ToggleTopicComplete(cfg models.PlannerConfig, subjectID, topicID string) models.PlannerConfig {
	si, ti, ok := locate(cfg, subjectID, topicID)
	if !ok {
		return cfg
	}

	subject := cfg.Subjects[si]
	topic := subject.Topics[ti]
	completing := !topic.Completed

	if completing {
		due, schedule := spaced_repetition.DueDate(topic.Difficulty, m.Today())
		if schedule && spaced_repetition.PendingFor(cfg.Reviews, topicID) < 0 {
			cfg.Reviews = appended(cfg.Reviews, models.ReviewItem{
				ID:          m.newID(),
				TopicID:     topicID,
				SubjectID:   subjectID,
				SubjectName: subject.Name,
				TopicName:   topic.Name,
				DueDate:     due,
			})
		}
	} else {
		cfg.Reviews = filtered(cfg.Reviews, func(r models.ReviewItem) bool {
			return r.TopicID != topicID || r.Completed
		})
	}

	topic.Completed = completing
	cfg = withTopic(cfg, si, ti, topic)

	if completing {
		m.notifier.Notify(fmt.Sprintf("Completed %q", topic.Name), notify.Success)
	} else {
		m.notifier.Notify(fmt.Sprintf("Marked %q as not done", topic.Name), notify.Info)
	}
	return cfg
}

func locate(cfg models.PlannerConfig, subjectID, topicID string) (int, int, bool) {
	si := cfg.FindSubject(subjectID)
	if si < 0 {
		return 0, 0, false
	}
	ti := cfg.Subjects[si].FindTopic(topicID)
	if ti < 0 {
		return 0, 0, false
	}
	return si, ti, true
}

func withTopic(cfg models.PlannerConfig, si, ti int, topic models.Topic) models.PlannerConfig {
	subject := cfg.Subjects[si]
	subject.Topics = replaced(subject.Topics, ti, topic)
	cfg.Subjects = replaced(cfg.Subjects, si, subject)
	return cfg
}
