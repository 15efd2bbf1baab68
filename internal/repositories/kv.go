package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// KVStore is a persistent key-value store over SQLite.
//
// It is the storage collaborator for the token manager, the credential
// store, and the last submitted input batch: Get/Set/Remove on single keys
// are atomic (single-row upsert), which is all the token cache requires
// for correctness.
type KVStore struct {
	db *sql.DB
}

// NewKVStore creates a KVStore backed by the given database.
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the value stored under key. The second return is false when the
// key is absent; an error is returned only for underlying storage failures.
func (s *KVStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, overwriting any previous value atomically.
func (s *KVStore) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Remove deletes the given keys. Removing an absent key is not an error.
func (s *KVStore) Remove(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec("DELETE FROM kv_store WHERE key = ?", key); err != nil {
			return fmt.Errorf("failed to remove key %s: %w", key, err)
		}
	}
	return nil
}

// GetJSON reads the value under key and unmarshals it into dest.
// Returns false when the key is absent.
func (s *KVStore) GetJSON(key string, dest any) (bool, error) {
	value, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return false, fmt.Errorf("failed to decode value for key %s: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals v and stores it under key.
func (s *KVStore) SetJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %s: %w", key, err)
	}
	return s.Set(key, string(data))
}
