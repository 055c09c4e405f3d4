package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/revisionbot/internal/service"
	"github.com/example/revisionbot/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	SubjectColumn    string // Column with the subject name
	TopicColumn      string // Column with the topic name
	DifficultyColumn string // Column with easy/medium/hard (or e/m/h)
	HoursColumn      string // Column with an optional hours override
	SheetName        string // Sheet to import; empty means the first sheet
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:         path,
		SubjectColumn:    "A",
		TopicColumn:      "B",
		DifficultyColumn: "C",
		HoursColumn:      "D",
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Skipped        int
	Rows           []service.TopicRow
	Errors         []string
}

var errEmptyRow = errors.New("empty row")

// ImportTopics reads topic rows from an Excel or CSV file. Rows that cannot
// be parsed are reported in Errors and left out of Rows; the error return is
// reserved for files that cannot be read at all.
func ImportTopics(config ImportConfig) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(config.FilePath), ".csv") {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}
	return parseRows(rows, config), nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excel: open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("excel: %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("excel: read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("excel: open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("excel: read csv: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRows(rows [][]string, config ImportConfig) *ImportResult {
	result := &ImportResult{
		Rows:   make([]service.TopicRow, 0, len(rows)),
		Errors: make([]string, 0),
	}

	for i, row := range rows {
		rowNum := i + 1
		if i == 0 && isHeader(cell(row, config.SubjectColumn)) {
			continue
		}

		parsed, err := parseRow(row, config)
		if errors.Is(err, errEmptyRow) {
			result.Skipped++
			continue
		}
		result.TotalProcessed++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		result.Rows = append(result.Rows, parsed)
	}
	return result
}

func parseRow(row []string, config ImportConfig) (service.TopicRow, error) {
	subject := cell(row, config.SubjectColumn)
	topic := cell(row, config.TopicColumn)
	difficulty := cell(row, config.DifficultyColumn)
	hours := cell(row, config.HoursColumn)

	if subject == "" && topic == "" && difficulty == "" && hours == "" {
		return service.TopicRow{}, errEmptyRow
	}
	if subject == "" {
		return service.TopicRow{}, errors.New("subject cannot be empty")
	}
	if topic == "" {
		return service.TopicRow{}, errors.New("topic cannot be empty")
	}

	out := service.TopicRow{Subject: subject, Topic: topic, Difficulty: models.DifficultyMedium}
	if difficulty != "" {
		d, ok := models.ParseDifficulty(difficulty)
		if !ok {
			return service.TopicRow{}, fmt.Errorf("unknown difficulty %q", difficulty)
		}
		out.Difficulty = d
	}
	if hours != "" {
		h, err := strconv.ParseFloat(strings.ReplaceAll(hours, ",", "."), 64)
		if err != nil || h <= 0 {
			return service.TopicRow{}, fmt.Errorf("invalid hours %q", hours)
		}
		out.Hours = h
	}
	return out, nil
}

func isHeader(first string) bool {
	return strings.EqualFold(first, "subject")
}

func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
