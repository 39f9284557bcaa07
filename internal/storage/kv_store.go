package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"traveline/local-app/internal/log"
)

// KeyValueStore is durable string storage keyed by name.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// SetMany writes all pairs or none of them.
	SetMany(values map[string]string) error
	// Delete removes all keys or none of them. Missing keys are ignored.
	Delete(keys ...string) error
	Close() error
}

// SQLStore implements KeyValueStore on top of a Database.
type SQLStore struct {
	mu     sync.Mutex
	db     Database
	logger *log.Logger
}

// NewSQLStore wraps an opened Database whose schema is initialised.
func NewSQLStore(db Database, logger *log.Logger) *SQLStore {
	return &SQLStore{db: db, logger: logger}
}

// Get returns the value for key and whether it was present.
func (s *SQLStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a single value.
func (s *SQLStore) Set(key, value string) error {
	return s.SetMany(map[string]string{key: value})
}

// SetMany stores every pair in one transaction.
func (s *SQLStore) SetMany(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return s.inTx(func() error {
		now := time.Now().UTC()
		for _, k := range keys {
			if _, err := s.db.Exec(
				`INSERT INTO kv (key, value, updated) VALUES (?, ?, ?)
				 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated = excluded.updated`,
				k, values[k], now,
			); err != nil {
				return fmt.Errorf("failed to write key %s: %w", k, err)
			}
		}
		return nil
	})
}

// Delete removes keys in one transaction.
func (s *SQLStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(func() error {
		for _, k := range keys {
			if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", k); err != nil {
				return fmt.Errorf("failed to delete key %s: %w", k, err)
			}
		}
		return nil
	})
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func (s *SQLStore) inTx(fn func() error) error {
	if err := s.db.Begin(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(); err != nil {
		if rbErr := s.db.Rollback(); rbErr != nil {
			s.logger.Error(context.Background(), "Rollback failed", log.Fields{"error": rbErr})
		}
		return err
	}
	if err := s.db.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// MemoryStore is a process-local KeyValueStore. Nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	return m.SetMany(map[string]string{key: value})
}

func (m *MemoryStore) SetMany(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *MemoryStore) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
