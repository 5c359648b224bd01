// Package pgmirror mirrors committed journal entries to PostgreSQL via Bun,
// for run post-mortems across process restarts. It is purely additive: the
// in-memory journal is always a run's read path, mirroring only happens
// after a commit has already been accepted.
//
// Adapted from the storage package's Bun wiring (db.go's NewDB,
// event_repository.go's Append): same connector/pool setup and
// NewInsert().Model(...).Exec(ctx) insert shape, repurposed to mirror
// journal.Journal commits instead of an application event log.
package pgmirror

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/smilemakc/checkflow/pkg/models"
)

// Entry is the Bun model backing the mirrored journal table.
type Entry struct {
	bun.BaseModel `bun:"table:journal_entries,alias:je"`

	CommitID    int64     `bun:"commit_id,pk"`
	SessionID   string    `bun:"session_id,notnull"`
	CheckID     string    `bun:"check_id,notnull"`
	Event       string    `bun:"event"`
	ScopeJSON   string    `bun:"scope_json"`
	ResultJSON  string    `bun:"result_json"`
	Success     bool      `bun:"success"`
	Skipped     bool      `bun:"skipped"`
	SkipReason  string    `bun:"skip_reason"`
	CommittedAt time.Time `bun:"committed_at,notnull"`
}

// Open connects to Postgres via pgdriver and wraps it as a Bun DB.
func Open(dsn string) (*bun.DB, error) {
	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(30*time.Second),
		pgdriver.WithDialTimeout(10*time.Second),
	)
	sqldb := sql.OpenDB(connector)
	sqldb.SetMaxOpenConns(5)
	sqldb.SetMaxIdleConns(2)
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// CreateSchema creates the mirror table if it doesn't already exist.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*Entry)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Mirror writes committed journal entries to Postgres, fire-and-forget.
type Mirror struct {
	db  *bun.DB
	log zerolog.Logger
}

// New wraps db as a journal mirror.
func New(db *bun.DB, log zerolog.Logger) *Mirror {
	return &Mirror{db: db, log: log}
}

// Write persists one committed entry. Intended to be called as
// journal.Journal's mirror callback, already running in its own goroutine;
// failures are logged, never propagated (the commit they mirror already
// succeeded).
func (m *Mirror) Write(e models.JournalEntry) {
	scopeJSON, _ := json.Marshal(e.Scope)
	resultJSON, _ := json.Marshal(e.Result)

	row := &Entry{
		CommitID:    e.CommitID,
		SessionID:   e.SessionID,
		CheckID:     e.CheckID,
		Event:       e.Event,
		ScopeJSON:   string(scopeJSON),
		ResultJSON:  string(resultJSON),
		Success:     e.Success,
		Skipped:     e.Skipped,
		SkipReason:  e.SkipReason,
		CommittedAt: e.CommittedAt,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := m.db.NewInsert().Model(row).Exec(ctx); err != nil {
		m.log.Warn().Err(err).Int64("commitId", e.CommitID).Msg("journal mirror write failed")
	}
}
