package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SettingRepository keeps named values of the store between restarts, e.g. the last fetch time
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetTime returns a time value stored by SetTime, nil if not set
func (r *SettingRepository) GetTime(ctx context.Context, key string) (*time.Time, error) {
	val, err := r.GetSetting(ctx, key)
	if err != nil || val == "" {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return nil, fmt.Errorf("parse %s value %q: %w", key, val, err)
	}
	return &ts, nil
}

// SetTime stores ts in UTC with nanoseconds
func (r *SettingRepository) SetTime(ctx context.Context, key string, ts time.Time) error {
	return r.SetSetting(ctx, key, ts.UTC().Format(time.RFC3339Nano))
}

// GetSetting returns a raw value, empty string if not set
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, r.db.Rebind("SELECT value FROM settings WHERE key = ?"), key)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting upserts a raw value, retried while sqlite is locked by a concurrent ingest
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	query := r.db.Rebind(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`)
	if err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, key, value)
		return err
	}); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}
