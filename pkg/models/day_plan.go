package models

// DayTask is a topic allocated to a single day. Topics are never split, so
// EstimatedHours is always the topic's full estimate.
type DayTask struct {
	TopicID        string  `json:"topicId"`
	SubjectID      string  `json:"subjectId"`
	SubjectName    string  `json:"subjectName"`
	TopicName      string  `json:"topicName"`
	EstimatedHours float64 `json:"estimatedHours"`
	Completed      bool    `json:"completed"`
}

// DayPlan is the derived allocation for one calendar day. It is never
// persisted.
type DayPlan struct {
	Date       string    `json:"date"`
	Tasks      []DayTask `json:"tasks"`
	IsBuffer   bool      `json:"isBuffer"`
	IsSkipped  bool      `json:"isSkipped"`
	TotalHours float64   `json:"totalHours"`
}

// IsStudyDay reports whether the day can receive allocations.
func (p DayPlan) IsStudyDay() bool {
	return !p.IsBuffer && !p.IsSkipped
}
