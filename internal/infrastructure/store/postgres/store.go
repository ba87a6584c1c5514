// Package postgres keeps the classification record log in a Postgres table,
// with the full result stored as JSONB next to the queryable columns.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082301)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS classification_records (
	id BIGSERIAL PRIMARY KEY,
	conversation_id TEXT NOT NULL,
	source TEXT NOT NULL,
	kind TEXT NOT NULL,
	result JSONB NOT NULL,
	stored_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_conversation ON classification_records(conversation_id);
CREATE INDEX IF NOT EXISTS idx_records_stored_at ON classification_records(stored_at);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// resultPayload is the JSONB shape of the result column: the document result
// plus the optional email result, so both request kinds share one table.
type resultPayload struct {
	Result domain.ClassificationResult `json:"result"`
	Email  *domain.EmailClassification `json:"email_result,omitempty"`
}

func (s *Store) Append(ctx context.Context, record domain.StoredRecord) error {
	resultJSON, err := json.Marshal(resultPayload{Result: record.Result, Email: record.Email})
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO classification_records (conversation_id, source, kind, result, stored_at)
VALUES ($1,$2,$3,$4,$5)
`, record.ConversationID, record.Source, string(record.Kind), resultJSON, record.StoredAt)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *Store) QueryByConversation(ctx context.Context, conversationID string) ([]domain.StoredRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT conversation_id, source, kind, result, stored_at
FROM classification_records
WHERE conversation_id = $1
ORDER BY id
`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.WrapError(domain.ErrRecordNotFound, "query records", fmt.Errorf("conversation %q", conversationID))
	}
	return records, nil
}

func (s *Store) All(ctx context.Context) ([]domain.StoredRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT conversation_id, source, kind, result, stored_at
FROM classification_records
ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]domain.StoredRecord, error) {
	var records []domain.StoredRecord
	for rows.Next() {
		var record domain.StoredRecord
		var kind string
		var resultRaw []byte

		if err := rows.Scan(&record.ConversationID, &record.Source, &kind, &resultRaw, &record.StoredAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var payload resultPayload
		if err := json.Unmarshal(resultRaw, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
		record.Result = payload.Result
		record.Email = payload.Email
		record.Kind = domain.DocumentKind(kind)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}
