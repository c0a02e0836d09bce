// Package localdb is a file-per-key store standing in for browser local
// storage: three logical keys, whole-value reads and writes, JSON or raw
// string values.
package localdb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// logical keys (kept compatible with existing persisted data)
const (
	usersKey   = "hs_users"
	sessionKey = "hs_session"
	dataKey    = "hs_data"
)

type DB struct {
	dir string
	mu  sync.RWMutex
}

func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating data dir %s", dir)
	}
	return &DB{dir: dir}, nil
}

func (db *DB) path(key string) string {
	return filepath.Join(db.dir, key+".json")
}

// ReadJSON unmarshals the value at key into v. Absent keys and unparsable
// values both report ok=false: corruption is treated as a cold start, never
// propagated as a failure.
func (db *DB) ReadJSON(key string, v interface{}) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	b, err := os.ReadFile(db.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "reading %s", key)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, nil
	}
	return true, nil
}

func (db *DB) WriteJSON(key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "marshaling %s", key)
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	return errors.Wrapf(os.WriteFile(db.path(key), b, 0o644), "writing %s", key)
}

// ReadString reads a raw (non-JSON) string value; absent keys report ok=false.
func (db *DB) ReadString(key string) (string, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	b, err := os.ReadFile(db.path(key))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func (db *DB) WriteString(key, val string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return errors.Wrapf(os.WriteFile(db.path(key), []byte(val), 0o644), "writing %s", key)
}

// Remove deletes the value at key; removing an absent key is not an error.
func (db *DB) Remove(key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := os.Remove(db.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", key)
	}
	return nil
}
