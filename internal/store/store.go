// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

// Package store persists processed batch artifacts and the batch history in
// BadgerDB. Every record expires after the configured retention period using
// Badger's native TTL.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/emotive/internal/config"
	"github.com/tomtom215/emotive/internal/logging"
	"github.com/tomtom215/emotive/internal/metrics"
)

// Key prefixes
const (
	prefixArtifact     = "artifact:"
	prefixArtifactData = "artifact_data:"
	prefixHistory      = "history:"
)

var (
	// ErrNotFound is returned when a record does not exist or has expired.
	ErrNotFound = errors.New("record not found")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store closed")
)

// Artifact is a downloadable file produced by a batch.
type Artifact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	Data        []byte    `json:"-"`
}

// HistoryEntry records one processed batch.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Artifact    string    `json:"artifact"`
	TotalRows   int       `json:"total_rows"`
	Successful  int       `json:"successful_predictions"`
	Failed      int       `json:"failed_predictions"`
	SuccessRate float64   `json:"success_rate"`
	Coverage    float64   `json:"coverage_percentage"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is a BadgerDB-backed artifact and history store. It is safe for
// concurrent use.
type Store struct {
	db        *badger.DB
	retention time.Duration

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the database described by cfg.
func Open(cfg *config.StoreConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Dur("retention", cfg.Retention).
		Msg("Store opened")

	return &Store{db: db, retention: cfg.Retention}, nil
}

func (s *Store) entry(key, value []byte) *badger.Entry {
	e := badger.NewEntry(key, value)
	if s.retention > 0 {
		e = e.WithTTL(s.retention)
	}
	return e
}

func (s *Store) check() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// PutArtifact stores a and its data.
func (s *Store) PutArtifact(_ context.Context, a *Artifact) (err error) {
	defer func() { metrics.RecordStoreOperation("put_artifact", err) }()

	if err := s.check(); err != nil {
		return err
	}
	if a.ID == "" {
		return errors.New("artifact id is required")
	}
	a.Size = len(a.Data)

	meta, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.SetEntry(s.entry([]byte(prefixArtifact+a.ID), meta)); err != nil {
			return fmt.Errorf("set artifact: %w", err)
		}
		if err := txn.SetEntry(s.entry([]byte(prefixArtifactData+a.ID), a.Data)); err != nil {
			return fmt.Errorf("set artifact data: %w", err)
		}
		return nil
	})
}

// GetArtifact returns the artifact with the given id, including its data.
func (s *Store) GetArtifact(_ context.Context, id string) (a *Artifact, err error) {
	defer func() {
		if errors.Is(err, ErrNotFound) {
			metrics.RecordStoreOperation("get_artifact", nil)
			return
		}
		metrics.RecordStoreOperation("get_artifact", err)
	}()

	if err := s.check(); err != nil {
		return nil, err
	}

	var artifact Artifact
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixArtifact + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get artifact: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &artifact)
		}); err != nil {
			return fmt.Errorf("unmarshal artifact: %w", err)
		}

		item, err = txn.Get([]byte(prefixArtifactData + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get artifact data: %w", err)
		}
		artifact.Data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

// historyKey orders entries by creation time, then id.
func historyKey(e *HistoryEntry) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", prefixHistory, e.CreatedAt.UnixNano(), e.ID))
}

// AppendHistory records a processed batch.
func (s *Store) AppendHistory(_ context.Context, e *HistoryEntry) (err error) {
	defer func() { metrics.RecordStoreOperation("append_history", err) }()

	if err := s.check(); err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(s.entry(historyKey(e), data))
	})
}

// ListHistory returns up to limit entries, newest first. limit <= 0 returns
// every entry.
func (s *Store) ListHistory(_ context.Context, limit int) (entries []HistoryEntry, err error) {
	defer func() { metrics.RecordStoreOperation("list_history", err) }()

	if err := s.check(); err != nil {
		return nil, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(prefixHistory)
		it := txn.NewIterator(opts)
		defer it.Close()

		// reverse iteration starts at the last key below the prefix upper bound
		for it.Seek([]byte(prefixHistory + "\xff")); it.ValidForPrefix(opts.Prefix); it.Next() {
			var e HistoryEntry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return fmt.Errorf("unmarshal history entry: %w", err)
			}
			entries = append(entries, e)
			if limit > 0 && len(entries) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// RunGC reclaims value log space until Badger reports nothing to rewrite.
func (s *Store) RunGC() error {
	if err := s.check(); err != nil {
		return err
	}
	for {
		err := s.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Ping reports whether the store is open.
func (s *Store) Ping(context.Context) error {
	if err := s.check(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return ErrClosed
	}
	return nil
}

// Close closes the database. Further calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	logging.Info().Msg("Store closed")
	return nil
}
