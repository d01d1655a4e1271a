package bootstrap

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aliskhannn/math-quiz-bot/internal/config"
	"github.com/aliskhannn/math-quiz-bot/internal/repository"
	"github.com/aliskhannn/math-quiz-bot/internal/storage"
)

// TestNewQuestionSourcePrefersURL verifies the URL source wins over the file path.
func TestNewQuestionSourcePrefersURL(t *testing.T) {
	cfg := &config.Config{Questions: config.Questions{URL: "http://localhost/q.json", Path: "q.json"}}
	if _, ok := NewQuestionSource(cfg).(*repository.HTTPQuestionSource); !ok {
		t.Fatalf("expected HTTP source")
	}

	cfg.Questions.URL = ""
	if _, ok := NewQuestionSource(cfg).(*repository.FileQuestionSource); !ok {
		t.Fatalf("expected file source")
	}
}

// TestNewPreferenceStoreDrivers verifies the non-database drivers.
func TestNewPreferenceStoreDrivers(t *testing.T) {
	ctx := context.Background()

	store, closeStore, err := NewPreferenceStore(ctx, &config.Config{Storage: config.Storage{Driver: config.StorageMemory}})
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	closeStore()
	if _, ok := store.(*storage.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}

	store, closeStore, err = NewPreferenceStore(ctx, &config.Config{Storage: config.Storage{
		Driver:   config.StorageFile,
		FilePath: filepath.Join(t.TempDir(), "prefs.yaml"),
	}})
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	closeStore()
	if _, ok := store.(*storage.FileStore); !ok {
		t.Fatalf("expected file store, got %T", store)
	}
}

// TestNewPreferenceStorePostgresNeedsDSN verifies a missing database URL is reported.
func TestNewPreferenceStorePostgresNeedsDSN(t *testing.T) {
	_, _, err := NewPreferenceStore(context.Background(), &config.Config{Storage: config.Storage{Driver: config.StoragePostgres}})
	if !errors.Is(err, config.ErrMissingEnvironmentVariables) {
		t.Fatalf("expected ErrMissingEnvironmentVariables, got %v", err)
	}
}
