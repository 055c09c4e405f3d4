// Package ai generates self-test questions for topics due for review using
// the OpenAI chat completions API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/example/revisionbot/internal/config"
	"github.com/example/revisionbot/pkg/models"
)

// QuestionCount is how many questions are requested per topic.
const QuestionCount = 3

// ErrDisabled is returned by New when no API key is configured.
var ErrDisabled = errors.New("ai: OPENAI_API_KEY is not set")

// ChatGPT represents a client for the OpenAI ChatGPT API
type ChatGPT struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
}

// New creates a new ChatGPT client
func New(cfg config.OpenAIConfig) (*ChatGPT, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	return &ChatGPT{
		apiKey:      strings.TrimSpace(cfg.APIKey),
		apiURL:      strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		model:       cfg.Model,
		maxTokens:   200,
		temperature: 0.5,
		client:      &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Message represents a message in the ChatGPT conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the ChatGPT API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse represents a response from the ChatGPT API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// RevisionQuestions asks for short questions a student can use to check
// they still remember the reviewed topic.
func (c *ChatGPT) RevisionQuestions(ctx context.Context, review models.ReviewItem) ([]string, error) {
	prompt := fmt.Sprintf(
		"Write %d short self-test questions for a student revising the topic %q of the subject %q. "+
			"Put each question on its own line. Do not include answers or any other text.",
		QuestionCount, review.TopicName, review.SubjectName,
	)

	content, err := c.complete(ctx, []Message{
		{Role: "system", Content: "You are a revision tutor. You write concise exam-style questions."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	questions := parseQuestions(content)
	if len(questions) == 0 {
		return nil, errors.New("ai: response contained no questions")
	}
	return questions, nil
}

func (c *ChatGPT) complete(ctx context.Context, messages []Message) (string, error) {
	request := ChatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("ai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(requestData))
	if err != nil {
		return "", fmt.Errorf("ai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: send request: %w", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("ai: decode response (status %d): %w", resp.StatusCode, err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("ai: api error: %s", response.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai: unexpected status %d", resp.StatusCode)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("ai: no response choices returned")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// parseQuestions splits a completion into questions, dropping blank lines and
// list markers such as "1.", "2)" or "-".
func parseQuestions(content string) []string {
	var questions []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(stripListMarker(strings.TrimSpace(line)))
		if line == "" {
			continue
		}
		questions = append(questions, line)
		if len(questions) == QuestionCount {
			break
		}
	}
	return questions
}

func stripListMarker(line string) string {
	for _, bullet := range []string{"-", "*", "•"} {
		if strings.HasPrefix(line, bullet) {
			return line[len(bullet):]
		}
	}
	digits := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsDigit(r) })
	if digits > 0 && (line[digits] == '.' || line[digits] == ')') {
		return line[digits+1:]
	}
	return line
}
