// Package sqlite provides a SQLite-backed wizard session store, so drafts
// survive a restart of the site process.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/voicebridge/internal/inquiry"
	"github.com/louisbranch/voicebridge/internal/inquiry/storage/sqlite/migrations"
	"github.com/louisbranch/voicebridge/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store persists wizard states in the wizard_sessions table.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens and migrates the store at path. Submissions cannot survive a
// restart, so any submitting flag left by a previous process is cleared.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, `UPDATE wizard_sessions SET submitting = 0 WHERE submitting <> 0`); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("release stale submissions: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get implements inquiry.Store.
func (s *Store) Get(ctx context.Context, id string) (inquiry.State, error) {
	if err := s.ready(); err != nil {
		return inquiry.State{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT step, draft_json, submitting FROM wizard_sessions WHERE session_id = ?`,
		id,
	)
	var (
		step       int64
		draftJSON  string
		submitting int64
	)
	if err := row.Scan(&step, &draftJSON, &submitting); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return inquiry.State{}, inquiry.ErrStateNotFound
		}
		return inquiry.State{}, fmt.Errorf("get wizard session: %w", err)
	}

	state := inquiry.State{Step: inquiry.Step(step), Submitting: submitting != 0}
	if err := json.Unmarshal([]byte(draftJSON), &state.Draft); err != nil {
		return inquiry.State{}, fmt.Errorf("decode wizard draft: %w", err)
	}
	if !state.Step.Valid() {
		return inquiry.State{}, fmt.Errorf("wizard session %s: %w", id, inquiry.ErrUnknownStep)
	}
	return state, nil
}

// Put implements inquiry.Store.
func (s *Store) Put(ctx context.Context, id string, state inquiry.State) error {
	if err := s.ready(); err != nil {
		return err
	}
	draftJSON, err := json.Marshal(state.Draft)
	if err != nil {
		return fmt.Errorf("encode wizard draft: %w", err)
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO wizard_sessions (session_id, step, draft_json, submitting, updated_at)
		 VALUES (?, ?, ?, 0, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		   step = excluded.step,
		   draft_json = excluded.draft_json,
		   updated_at = excluded.updated_at
		 WHERE wizard_sessions.submitting = 0`,
		id,
		int64(state.Step),
		string(draftJSON),
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put wizard session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("put wizard session: %w", err)
	}
	if affected == 0 {
		return inquiry.ErrSubmissionInProgress
	}
	return nil
}

// Delete implements inquiry.Store.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM wizard_sessions WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete wizard session: %w", err)
	}
	return nil
}

// BeginSubmit implements inquiry.Store with a conditional update.
func (s *Store) BeginSubmit(ctx context.Context, id string) (inquiry.State, error) {
	if err := s.ready(); err != nil {
		return inquiry.State{}, err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE wizard_sessions SET submitting = 1, updated_at = ? WHERE session_id = ? AND submitting = 0`,
		s.now().UTC().UnixMilli(),
		id,
	)
	if err != nil {
		return inquiry.State{}, fmt.Errorf("begin wizard submission: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return inquiry.State{}, fmt.Errorf("begin wizard submission: %w", err)
	}
	state, err := s.Get(ctx, id)
	if err != nil {
		return inquiry.State{}, err
	}
	if affected == 0 {
		return inquiry.State{}, inquiry.ErrSubmissionInProgress
	}
	return state, nil
}

// EndSubmit implements inquiry.Store.
func (s *Store) EndSubmit(ctx context.Context, id string, reset bool) error {
	if err := s.ready(); err != nil {
		return err
	}
	now := s.now().UTC().UnixMilli()
	var (
		result sql.Result
		err    error
	)
	if reset {
		initial := inquiry.NewState()
		draftJSON, encodeErr := json.Marshal(initial.Draft)
		if encodeErr != nil {
			return fmt.Errorf("encode wizard draft: %w", encodeErr)
		}
		result, err = s.sqlDB.ExecContext(
			ctx,
			`UPDATE wizard_sessions SET step = ?, draft_json = ?, submitting = 0, updated_at = ? WHERE session_id = ?`,
			int64(initial.Step),
			string(draftJSON),
			now,
			id,
		)
	} else {
		result, err = s.sqlDB.ExecContext(
			ctx,
			`UPDATE wizard_sessions SET submitting = 0, updated_at = ? WHERE session_id = ?`,
			now,
			id,
		)
	}
	if err != nil {
		return fmt.Errorf("end wizard submission: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("end wizard submission: %w", err)
	}
	if affected == 0 {
		return inquiry.ErrStateNotFound
	}
	return nil
}

// Purge implements inquiry.Store. Sessions with a submission in flight are
// kept.
func (s *Store) Purge(ctx context.Context, idleBefore time.Time) (int, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM wizard_sessions WHERE submitting = 0 AND updated_at < ?`,
		idleBefore.UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("purge wizard sessions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge wizard sessions: %w", err)
	}
	return int(affected), nil
}

func (s *Store) ready() error {
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	return nil
}
