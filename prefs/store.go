// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-tally/models"
)

var (
	ErrNotFound    = errors.New("preference not found")
	ErrInvalidView = errors.New("invalid visualization type")
)

// Store keeps the chosen visualization per question.
type Store interface {
	All(ctx context.Context) (map[string]models.Visualization, error)
	Get(ctx context.Context, questionID string) (models.Visualization, error)
	Save(ctx context.Context, questionID string, v models.Visualization) error
	Delete(ctx context.Context, questionID string) error
	Clear(ctx context.Context) error
}

// SQLStore is a Store over the visualization_preference table. Queries use
// $n placeholders, which both postgres and sqlite accept.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) All(ctx context.Context) (map[string]models.Visualization, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_id, type, options
		FROM visualization_preference
		ORDER BY question_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.Visualization)
	for rows.Next() {
		var qid, viewType, options string
		if err := rows.Scan(&qid, &viewType, &options); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		v, err := decode(viewType, options)
		if err != nil {
			return nil, fmt.Errorf("preference %s: %w", qid, err)
		}
		out[qid] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}
	return out, nil
}

func (s *SQLStore) Get(ctx context.Context, questionID string) (models.Visualization, error) {
	var viewType, options string
	err := s.db.QueryRowContext(ctx, `
		SELECT type, options
		FROM visualization_preference
		WHERE question_id = $1
	`, questionID).Scan(&viewType, &options)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Visualization{}, ErrNotFound
	}
	if err != nil {
		return models.Visualization{}, fmt.Errorf("failed to query preference: %w", err)
	}
	return decode(viewType, options)
}

// Save inserts or replaces the preference for questionID.
func (s *SQLStore) Save(ctx context.Context, questionID string, v models.Visualization) error {
	return s.save(ctx, s.db, questionID, v)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLStore) save(ctx context.Context, db execer, questionID string, v models.Visualization) error {
	if v.Type == "" {
		return ErrInvalidView
	}
	options, err := json.Marshal(nonNilOptions(v.Options))
	if err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO visualization_preference (question_id, type, options, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (question_id) DO UPDATE
		SET type = excluded.type, options = excluded.options, updated_at = excluded.updated_at
	`, questionID, v.Type, string(options), s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, questionID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visualization_preference WHERE question_id = $1`, questionID)
	if err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM visualization_preference`); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	return nil
}

// ReplaceAll swaps the whole preference set for prefs in one transaction.
// On error the previous set is left untouched.
func (s *SQLStore) ReplaceAll(ctx context.Context, prefs map[string]models.Visualization) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM visualization_preference`); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	for qid, v := range prefs {
		if err := s.save(ctx, tx, qid, v); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit preferences: %w", err)
	}
	return nil
}

func decode(viewType, options string) (models.Visualization, error) {
	v := models.Visualization{Type: viewType}
	if options == "" || options == "{}" {
		return v, nil
	}
	if err := json.Unmarshal([]byte(options), &v.Options); err != nil {
		return models.Visualization{}, fmt.Errorf("failed to decode options: %w", err)
	}
	return v, nil
}

func nonNilOptions(o map[string]any) map[string]any {
	if o == nil {
		return map[string]any{}
	}
	return o
}
