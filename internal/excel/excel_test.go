package excel

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/revisionbot/internal/service"
	"github.com/example/revisionbot/pkg/models"
)

func TestImportTopics_CSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "topics.csv")
	content := "Subject,Topic,Difficulty,Hours\n" +
		"Math,Calculus,hard,\n" +
		"Math,Algebra,e,1.5\n" +
		",,,\n" +
		"Biology,,medium,\n" +
		"Biology,Cells,impossible,\n" +
		"Biology,Genetics,,\"2,5\"\n" +
		"Physics,Optics,m,-1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	result, err := ImportTopics(DefaultImportConfig(path))
	require.NoError(t, err)

	assert.Equal(t, []service.TopicRow{
		{Subject: "Math", Topic: "Calculus", Difficulty: models.DifficultyHard},
		{Subject: "Math", Topic: "Algebra", Difficulty: models.DifficultyEasy, Hours: 1.5},
		{Subject: "Biology", Topic: "Genetics", Difficulty: models.DifficultyMedium, Hours: 2.5},
	}, result.Rows)
	assert.Equal(t, 6, result.TotalProcessed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []string{
		"Row 5: topic cannot be empty",
		`Row 6: unknown difficulty "impossible"`,
		`Row 8: invalid hours "-1"`,
	}, result.Errors)
}

func TestImportTopics_Excel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "topics.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Math", "Calculus", "Hard", 4}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"History", "WW2"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	result, err := ImportTopics(DefaultImportConfig(path))
	require.NoError(t, err)

	assert.Empty(t, result.Errors)
	assert.Equal(t, []service.TopicRow{
		{Subject: "Math", Topic: "Calculus", Difficulty: models.DifficultyHard, Hours: 4},
		{Subject: "History", Topic: "WW2", Difficulty: models.DifficultyMedium},
	}, result.Rows)
}

func TestImportTopics_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := ImportTopics(DefaultImportConfig(filepath.Join(t.TempDir(), "nope.xlsx")))
	assert.Error(t, err)
}

func TestColumnToIndex(t *testing.T) {
	t.Parallel()

	tests := map[string]int{"A": 0, "d": 3, "Z": 25, "AA": 26}
	for column, want := range tests {
		assert.Equal(t, want, columnToIndex(column), column)
	}
}

func TestExportPlan(t *testing.T) {
	t.Parallel()

	cfg := models.PlannerConfig{
		Subjects: []models.Subject{{ID: "s1", Name: "Math"}},
		Reviews: []models.ReviewItem{
			{ID: "r1", SubjectName: "Math", TopicName: "Calculus", DueDate: "2024-01-12"},
		},
		StudySessions: []models.StudySession{
			{ID: "x1", Date: "2024-01-10", SubjectID: "s1", Duration: 25},
			{ID: "x2", Date: "2024-01-10", SubjectID: "gone", Duration: 10},
		},
	}
	plans := []models.DayPlan{
		{Date: "2024-01-10", Tasks: []models.DayTask{
			{SubjectName: "Math", TopicName: "Calculus", EstimatedHours: 3},
		}, TotalHours: 3},
		{Date: "2024-01-11", Tasks: []models.DayTask{}, IsSkipped: true},
		{Date: "2024-01-12", Tasks: []models.DayTask{}, IsBuffer: true},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportPlan(&buf, cfg, plans))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{PlanSheet, ReviewsSheet, SessionsSheet}, f.GetSheetList())

	planRows, err := f.GetRows(PlanSheet)
	require.NoError(t, err)
	require.Len(t, planRows, 4)
	assert.Equal(t, []string{"2024-01-10", "Wed, Jan 10", "Study", "Math", "Calculus", "3"}, planRows[1])
	assert.Equal(t, "Skipped", planRows[2][2])
	assert.Equal(t, "Buffer", planRows[3][2])

	reviewRows, err := f.GetRows(ReviewsSheet)
	require.NoError(t, err)
	require.Len(t, reviewRows, 2)
	assert.Equal(t, []string{"2024-01-12", "Math", "Calculus"}, reviewRows[1][:3])

	sessionRows, err := f.GetRows(SessionsSheet)
	require.NoError(t, err)
	require.Len(t, sessionRows, 3)
	assert.Equal(t, []string{"2024-01-10", "Math", "25"}, sessionRows[1])
	assert.Equal(t, "gone", sessionRows[2][1])
}
