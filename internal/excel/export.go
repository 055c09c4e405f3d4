// Package excel moves planner data in and out of spreadsheets: topics are
// imported from xlsx or csv, and the schedule is exported as an xlsx workbook.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/example/revisionbot/internal/calendar"
	"github.com/example/revisionbot/pkg/models"
)

// Sheet names of an exported workbook.
const (
	PlanSheet     = "Plan"
	ReviewsSheet  = "Reviews"
	SessionsSheet = "Sessions"
)

var (
	planHeader     = []interface{}{"Date", "Day", "Status", "Subject", "Topic", "Hours"}
	reviewsHeader  = []interface{}{"Due", "Subject", "Topic", "Completed"}
	sessionsHeader = []interface{}{"Date", "Subject", "Minutes"}
)

// ExportPlan writes plans, cfg's reviews and cfg's study sessions to w as an
// xlsx workbook. Each planned task gets its own row; days without tasks get
// a single row carrying their status.
func ExportPlan(w io.Writer, cfg models.PlannerConfig, plans []models.DayPlan) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", PlanSheet)
	f.NewSheet(ReviewsSheet)
	f.NewSheet(SessionsSheet)

	if err := writePlan(f, plans); err != nil {
		return err
	}
	if err := writeReviews(f, cfg.Reviews); err != nil {
		return err
	}
	if err := writeSessions(f, cfg); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("excel: write workbook: %w", err)
	}
	return nil
}

func writePlan(f *excelize.File, plans []models.DayPlan) error {
	rows := [][]interface{}{planHeader}
	for _, day := range plans {
		status := dayStatus(day)
		if len(day.Tasks) == 0 {
			rows = append(rows, []interface{}{day.Date, calendar.FormatDate(day.Date), status, "", "", 0})
			continue
		}
		for _, task := range day.Tasks {
			rows = append(rows, []interface{}{
				day.Date, calendar.FormatDate(day.Date), status,
				task.SubjectName, task.TopicName, task.EstimatedHours,
			})
		}
	}
	return writeRows(f, PlanSheet, rows)
}

func writeReviews(f *excelize.File, reviews []models.ReviewItem) error {
	rows := [][]interface{}{reviewsHeader}
	for _, r := range reviews {
		rows = append(rows, []interface{}{r.DueDate, r.SubjectName, r.TopicName, r.Completed})
	}
	return writeRows(f, ReviewsSheet, rows)
}

func writeSessions(f *excelize.File, cfg models.PlannerConfig) error {
	rows := [][]interface{}{sessionsHeader}
	for _, s := range cfg.StudySessions {
		name := s.SubjectID
		if i := cfg.FindSubject(s.SubjectID); i >= 0 {
			name = cfg.Subjects[i].Name
		}
		rows = append(rows, []interface{}{s.Date, name, s.Duration})
	}
	return writeRows(f, SessionsSheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("excel: %s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("excel: %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func dayStatus(day models.DayPlan) string {
	switch {
	case day.IsSkipped && day.IsBuffer:
		return "Skipped (buffer)"
	case day.IsSkipped:
		return "Skipped"
	case day.IsBuffer:
		return "Buffer"
	}
	return "Study"
}
