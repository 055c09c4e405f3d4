package models

import "strings"

// Subject groups topics. Topic order is insertion order.
type Subject struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Topics []Topic `json:"topics"`
}

// FindTopic returns the index of the topic with the given id, or -1.
func (s Subject) FindTopic(topicID string) int {
	for i, t := range s.Topics {
		if t.ID == topicID {
			return i
		}
	}
	return -1
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
