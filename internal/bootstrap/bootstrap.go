// Package bootstrap builds the collaborators shared by the entry points.
package bootstrap

import (
	"context"
	"net/http"

	"github.com/aliskhannn/math-quiz-bot/internal/config"
	"github.com/aliskhannn/math-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/math-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/math-quiz-bot/internal/repository"
	"github.com/aliskhannn/math-quiz-bot/internal/service"
	"github.com/aliskhannn/math-quiz-bot/internal/storage"
)

// NewQuestionSource returns an HTTP source when a URL is configured and a file source otherwise.
func NewQuestionSource(cfg *config.Config) service.QuestionSource {
	if cfg.Questions.URL != "" {
		return repository.NewHTTPQuestionSource(cfg.Questions.URL, &http.Client{Timeout: cfg.Questions.LoadTimeout})
	}
	return repository.NewFileQuestionSource(cfg.Questions.Path)
}

// NewPreferenceStore opens the configured key-value backend. The returned
// func releases it.
func NewPreferenceStore(ctx context.Context, cfg *config.Config) (service.KeyValueStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return storage.NewMemoryStore(), func() {}, nil
	case config.StorageFile:
		fs, err := storage.NewFileStore(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, nil, err
	}
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, nil, err
	}

	repo := pgrepo.NewPreferenceRepository(pool, postgres.NewTransactor(pool))
	return repo, pool.Close, nil
}
