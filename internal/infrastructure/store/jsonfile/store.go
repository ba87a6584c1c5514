// Package jsonfile keeps the classification record log in a single JSON array
// on disk. The file is read once at open and rewritten in full on every
// append, which keeps it human-inspectable at the cost of write amplification.
// Fine for the volumes a single triage node sees.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

type Store struct {
	path string

	mu      sync.Mutex
	records []domain.StoredRecord
}

// Open loads the record log at path, creating parent directories as needed.
// A missing file is an empty log, not an error.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "./data/records.json"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read record log: %w", err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.records); err != nil {
		return nil, fmt.Errorf("parse record log: %w", err)
	}
	return s, nil
}

func (s *Store) Append(_ context.Context, record domain.StoredRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	if err := s.flushLocked(); err != nil {
		// The in-memory log must match the file; roll back the append.
		s.records = s.records[:len(s.records)-1]
		return err
	}
	return nil
}

func (s *Store) QueryByConversation(_ context.Context, conversationID string) ([]domain.StoredRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.StoredRecord
	for _, record := range s.records {
		if record.ConversationID == conversationID {
			out = append(out, record)
		}
	}
	if out == nil {
		return nil, domain.WrapError(domain.ErrRecordNotFound, "query records", fmt.Errorf("conversation %q", conversationID))
	}
	return out, nil
}

func (s *Store) All(_ context.Context) ([]domain.StoredRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.StoredRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// flushLocked rewrites the whole log. Write goes through a temp file plus
// rename so a crash mid-write never truncates existing records.
func (s *Store) flushLocked() error {
	raw, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record log: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write record log: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace record log: %w", err)
	}
	return nil
}
