package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/revisionbot/pkg/models"
)

// argSeparator splits multi-word command arguments: /topic Math | Calculus | hard
const argSeparator = "|"

// topicArgs is the parsed form of /topic.
type topicArgs struct {
	Subject    string
	Topic      string
	Difficulty models.Difficulty
	Hours      float64 // zero means derive from difficulty
}

// splitArgs splits a command argument string on "|" and trims each part.
// Empty input yields no parts.
func splitArgs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, argSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseTopicArgs parses "subject | topic [| difficulty [| hours]]".
func parseTopicArgs(s string) (topicArgs, error) {
	parts := splitArgs(s)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return topicArgs{}, errors.New("usage: /topic <subject> | <topic> [| easy|medium|hard [| hours]]")
	}

	args := topicArgs{Subject: parts[0], Topic: parts[1], Difficulty: models.DifficultyMedium}
	if len(parts) > 2 && parts[2] != "" {
		d, ok := models.ParseDifficulty(parts[2])
		if !ok {
			return topicArgs{}, fmt.Errorf("unknown difficulty %q, use easy, medium or hard", parts[2])
		}
		args.Difficulty = d
	}
	if len(parts) > 3 && parts[3] != "" {
		h, err := parsePositive(parts[3])
		if err != nil {
			return topicArgs{}, err
		}
		args.Hours = h
	}
	return args, nil
}

// parsePair parses "first | second" where both parts are required.
func parsePair(s, usage string) (string, string, error) {
	parts := splitArgs(s)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.New("usage: " + usage)
	}
	return parts[0], parts[1], nil
}

// parsePositive parses a positive decimal number, accepting a comma as the
// decimal separator.
func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%q is not a positive number", s)
	}
	return v, nil
}

// findSubject looks a subject up by name, ignoring case.
func findSubject(cfg models.PlannerConfig, name string) (models.Subject, bool) {
	for _, s := range cfg.Subjects {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, true
		}
	}
	return models.Subject{}, false
}

// findTopic looks a topic up by subject and topic name, ignoring case.
func findTopic(cfg models.PlannerConfig, subjectName, topicName string) (models.Subject, models.Topic, error) {
	subject, ok := findSubject(cfg, subjectName)
	if !ok {
		return models.Subject{}, models.Topic{}, fmt.Errorf("no subject named %q", subjectName)
	}
	for _, t := range subject.Topics {
		if strings.EqualFold(t.Name, strings.TrimSpace(topicName)) {
			return subject, t, nil
		}
	}
	return models.Subject{}, models.Topic{}, fmt.Errorf("no topic %q in %s", topicName, subject.Name)
}

// Callback payloads. Ids are 16 characters, so the longest payload
// ("t:" + id + ":" + id) stays well inside Telegram's 64-byte limit.
const (
	cbToggleTopic  = "t:"
	cbToggleReview = "r:"
	cbSkipDay      = "s:"
	cbSubject      = "sub:"
	cbFocus        = "f:"
	cbQuiz         = "q:"
	cbMenu         = "m:"
	cbResetConfirm = "reset:yes"
	cbResetCancel  = "reset:no"
)

// Menu targets reachable via cbMenu.
const (
	menuToday    = "today"
	menuUpcoming = "upcoming"
	menuReviews  = "reviews"
	menuSubjects = "subjects"
	menuStats    = "stats"
)

func topicCallback(subjectID, topicID string) string {
	return cbToggleTopic + subjectID + ":" + topicID
}

// parseTopicCallback splits the payload of a topic toggle.
func parseTopicCallback(data string) (subjectID, topicID string, ok bool) {
	rest, found := strings.CutPrefix(data, cbToggleTopic)
	if !found {
		return "", "", false
	}
	subjectID, topicID, ok = strings.Cut(rest, ":")
	if !ok || subjectID == "" || topicID == "" {
		return "", "", false
	}
	return subjectID, topicID, true
}
