package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/math-quiz-bot/internal/infra/postgres"
)

// PreferenceRepository stores string preferences per user in the preferences table.
type PreferenceRepository struct {
	db         postgres.DBTX
	transactor *postgres.Transactor
}

// NewPreferenceRepository creates a PreferenceRepository.
func NewPreferenceRepository(db postgres.DBTX, transactor *postgres.Transactor) *PreferenceRepository {
	return &PreferenceRepository{db: db, transactor: transactor}
}

// Get returns the value stored under key for userID.
func (r *PreferenceRepository) Get(ctx context.Context, userID int64, key string) (string, bool, error) {
	return getPreference(ctx, r.db, userID, key)
}

// Set inserts or replaces the value stored under key for userID.
func (r *PreferenceRepository) Set(ctx context.Context, userID int64, key, value string) error {
	return setPreference(ctx, r.db, userID, key, value)
}

// Update reads, transforms and writes the value under key in one transaction.
// Concurrent updates of the same key are serialized by an advisory lock.
func (r *PreferenceRepository) Update(
	ctx context.Context,
	userID int64,
	key string,
	fn func(old string, ok bool) (string, bool),
) error {
	return r.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($2, $1))`, userID, key); err != nil {
			return fmt.Errorf("lock preference: %w", err)
		}

		old, ok, err := getPreference(ctx, tx, userID, key)
		if err != nil {
			return err
		}

		next, write := fn(old, ok)
		if !write {
			return nil
		}

		return setPreference(ctx, tx, userID, key, next)
	})
}

func getPreference(ctx context.Context, db postgres.DBTX, userID int64, key string) (string, bool, error) {
	query := `
		SELECT value
		FROM preferences
		WHERE user_id = $1 AND key = $2
	`

	var value string
	err := db.QueryRow(ctx, query, userID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get preference: %w", err)
	}

	return value, true, nil
}

func setPreference(ctx context.Context, db postgres.DBTX, userID int64, key, value string) error {
	query := `
		INSERT INTO preferences (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`

	if _, err := db.Exec(ctx, query, userID, key, value); err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}
