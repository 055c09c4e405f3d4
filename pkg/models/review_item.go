package models

// ReviewItem is a spaced-repetition reminder created when a topic is
// completed. Subject and topic names are captured at creation time and are
// not updated when the originals are renamed or removed.
type ReviewItem struct {
	ID          string `json:"id"`
	TopicID     string `json:"topicId"`
	SubjectID   string `json:"subjectId"`
	SubjectName string `json:"subjectName"`
	TopicName   string `json:"topicName"`
	DueDate     string `json:"dueDate"`
	Completed   bool   `json:"completed"`
}
