// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/poimap/internal/config"
)

// UserStoreType defines the type of user storage backend.
type UserStoreType string

const (
	// UserStoreMemory uses in-memory storage (default, not persistent).
	UserStoreMemory UserStoreType = "memory"

	// UserStoreBadger uses BadgerDB for persistent user storage.
	UserStoreBadger UserStoreType = "badger"
)

const userKeyPrefix = "user:"

// BadgerUserStore implements UserStore using BadgerDB for durable storage.
type BadgerUserStore struct {
	db     *badger.DB
	ownsDB bool
}

// OpenBadgerUserStore opens (or creates) a BadgerDB at path.
// Close releases the database.
func OpenBadgerUserStore(path string) (*BadgerUserStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for users: %w", err)
	}
	return &BadgerUserStore{db: db, ownsDB: true}, nil
}

// NewBadgerUserStoreFromDB wraps an existing DB. Close leaves it open.
func NewBadgerUserStoreFromDB(db *badger.DB) *BadgerUserStore {
	return &BadgerUserStore{db: db}
}

// Create stores a new user. The existence check and write share one
// transaction, so concurrent signups for one email conflict instead of overwriting.
func (s *BadgerUserStore) Create(_ context.Context, u *User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		key := []byte(userKeyPrefix + u.Email)
		_, err := txn.Get(key)
		if err == nil {
			return ErrUserExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get user: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		return nil
	})
	if errors.Is(err, badger.ErrConflict) {
		return ErrUserExists
	}
	return err
}

// Get retrieves a user by normalized email.
func (s *BadgerUserStore) Get(_ context.Context, email string) (*User, error) {
	var user User

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Close closes the database if the store opened it.
func (s *BadgerUserStore) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

// NewUserStore creates the store selected by cfg.UserStore.
func NewUserStore(cfg *config.SecurityConfig) (UserStore, error) {
	switch UserStoreType(cfg.UserStore) {
	case UserStoreBadger:
		return OpenBadgerUserStore(cfg.UserStorePath)
	case UserStoreMemory, "":
		return NewMemoryUserStore(), nil
	default:
		return nil, fmt.Errorf("unknown user store %q", cfg.UserStore)
	}
}
