package models

// SubjectTime is the focused time logged against one subject.
type SubjectTime struct {
	SubjectID   string  `json:"subjectId"`
	SubjectName string  `json:"subjectName"`
	Minutes     int     `json:"minutes"`
	Share       float64 `json:"share"` // fraction of all logged minutes
}

// Statistics summarises study progress for the analytics view.
type Statistics struct {
	TotalMinutes    int           `json:"totalMinutes"`
	TotalHours      float64       `json:"totalHours"`
	BySubject       []SubjectTime `json:"bySubject"`
	TopicsTotal     int           `json:"topicsTotal"`
	TopicsCompleted int           `json:"topicsCompleted"`
	HoursRemaining  float64       `json:"hoursRemaining"`
	PendingReviews  int           `json:"pendingReviews"`
	DueReviews      int           `json:"dueReviews"`
	DaysUntilExam   int           `json:"daysUntilExam"`
}
