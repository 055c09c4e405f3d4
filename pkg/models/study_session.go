package models

// StudySession is an append-only record of focused study time.
type StudySession struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	SubjectID string `json:"subjectId"`
	Duration  int    `json:"duration"` // minutes
}
