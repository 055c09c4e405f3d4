package bot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/revisionbot/internal/excel"
)

// maxReportedErrors caps how many row errors an import reply lists.
const maxReportedErrors = 10

func (b *Bot) handleExport(chatID int64) error {
	var buf bytes.Buffer
	if err := excel.ExportPlan(&buf, b.planner.Config(), b.planner.Plan()); err != nil {
		b.log.Error("export failed", "error", err)
		return b.sendText(chatID, "❌ Couldn't build the spreadsheet.", nil)
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("revision-plan-%s.xlsx", b.planner.Today()),
		Bytes: buf.Bytes(),
	})
	doc.Caption = "📎 Your revision plan, reviews and study log."
	return b.sendMessage(doc)
}

// handleDocument imports topics from an uploaded spreadsheet.
func (b *Bot) handleDocument(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	ext := strings.ToLower(filepath.Ext(message.Document.FileName))
	if ext != ".xlsx" && ext != ".csv" {
		return b.sendText(chatID, "Send an .xlsx or .csv file with columns Subject, Topic, Difficulty, Hours.", nil)
	}

	path, err := b.download(ctx, message.Document.FileID, ext)
	if err != nil {
		b.log.Error("download failed", "file", message.Document.FileName, "error", err)
		return b.sendText(chatID, "❌ Couldn't download the file.", nil)
	}
	defer os.Remove(path)

	result, err := excel.ImportTopics(excel.DefaultImportConfig(path))
	if err != nil {
		b.log.Warn("import failed", "file", message.Document.FileName, "error", err)
		return b.sendText(chatID, "❌ Couldn't read the file. Is it a valid spreadsheet?", nil)
	}

	if len(result.Rows) > 0 {
		b.planner.ImportTopics(ctx, result.Rows)
	}
	if len(result.Errors) == 0 {
		if len(result.Rows) == 0 {
			return b.sendText(chatID, "The file has no topic rows.", nil)
		}
		return nil
	}
	return b.sendText(chatID, formatImportErrors(result), nil)
}

func formatImportErrors(result *excel.ImportResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "⚠️ %d of %d row(s) were not imported:\n", len(result.Errors), result.TotalProcessed)
	for i, e := range result.Errors {
		if i == maxReportedErrors {
			fmt.Fprintf(&sb, "…and %d more\n", len(result.Errors)-maxReportedErrors)
			break
		}
		sb.WriteString(e)
		sb.WriteString("\n")
	}
	return sb.String()
}

// download fetches a Telegram file into a temporary file and returns its
// path. The caller removes it.
func (b *Bot) download(ctx context.Context, fileID, ext string) (string, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("bot: resolve file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("bot: download request: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("bot: download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bot: download: unexpected status %d", resp.StatusCode)
	}

	f, err := os.CreateTemp("", "revision-import-*"+ext)
	if err != nil {
		return "", fmt.Errorf("bot: temp file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("bot: save download: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("bot: save download: %w", err)
	}
	return f.Name(), nil
}
