package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrMalformedPayload = errors.New("malformed question payload")
)

// FileQuestionSource reads questions from a JSON or YAML file.
// The file is re-read on every Load.
type FileQuestionSource struct {
	path string
}

// NewFileQuestionSource creates a source for the file at path.
func NewFileQuestionSource(path string) *FileQuestionSource {
	return &FileQuestionSource{path: path}
}

// Load reads and decodes the question file.
func (s *FileQuestionSource) Load(_ context.Context) ([]entities.RawQuestion, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(s.path))
	if ext == ".yaml" || ext == ".yml" {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

// HTTPQuestionSource fetches questions from a URL, bypassing caches.
type HTTPQuestionSource struct {
	url    string
	client *http.Client
}

// NewHTTPQuestionSource creates a source for url. A nil client means http.DefaultClient.
func NewHTTPQuestionSource(url string, client *http.Client) *HTTPQuestionSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPQuestionSource{url: url, client: client}
}

// Load fetches and decodes the question list.
func (s *HTTPQuestionSource) Load(ctx context.Context) ([]entities.RawQuestion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch questions: %w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return decodeJSON(data)
}

func decodeJSON(data []byte) ([]entities.RawQuestion, error) {
	var questions []entities.RawQuestion
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&questions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after question list", ErrMalformedPayload)
	}
	return questions, nil
}

func decodeYAML(data []byte) ([]entities.RawQuestion, error) {
	var questions []entities.RawQuestion
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&questions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return questions, nil
}
