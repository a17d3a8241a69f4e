// Package store provides the key/value persistence used for settings slots.
package store

import "errors"

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store is a namespaced key/value store. Keys carry their own namespace
// prefix; values are opaque strings.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}

// DB is a Store holding resources that must be released with Close.
type DB interface {
	Store
	Close() error
}

// Open opens the SQLite database at path, or an in-memory store when path is empty.
func Open(path string) (DB, error) {
	if path == "" {
		return NewMemory(), nil
	}
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return db, nil
}
