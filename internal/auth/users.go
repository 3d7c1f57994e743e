// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/poimap/internal/logging"
	"github.com/tomtom215/poimap/internal/metrics"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordTooLong    = errors.New("password too long")
)

// Password limits enforced at signup. The minimum counts characters; the
// maximum is bcrypt's input limit in bytes.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

// Demo account seeded at startup when security.seed_demo_user is true.
const (
	DemoEmail    = "demo@demo.com"
	DemoPassword = "demo1234"
)

// User is a stored account.
type User struct {
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStore persists accounts keyed by normalized email.
type UserStore interface {
	// Create stores u, returning ErrUserExists if the email is taken.
	Create(ctx context.Context, u *User) error
	// Get returns ErrUserNotFound for unknown emails.
	Get(ctx context.Context, email string) (*User, error)
	Close() error
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Accounts registers and verifies users against a UserStore.
type Accounts struct {
	store UserStore
	cost  int

	// dummyHash is compared against when the user is unknown so both
	// failure paths pay one bcrypt comparison.
	dummyOnce sync.Once
	dummyHash []byte
}

// NewAccounts creates an account service. cost is the bcrypt work factor.
func NewAccounts(store UserStore, cost int) *Accounts {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Accounts{store: store, cost: cost}
}

// Register creates an account. It returns the normalized email.
func (a *Accounts) Register(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)
	if utf8.RuneCountInString(password) < MinPasswordLength {
		metrics.RecordAuthAttempt("signup", false)
		return "", ErrPasswordTooShort
	}
	if len(password) > MaxPasswordBytes {
		metrics.RecordAuthAttempt("signup", false)
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		metrics.RecordAuthAttempt("signup", false)
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.store.Create(ctx, &User{Email: email, PasswordHash: hash, CreatedAt: time.Now().UTC()}); err != nil {
		metrics.RecordAuthAttempt("signup", false)
		return "", err
	}

	metrics.RecordAuthAttempt("signup", true)
	logging.Ctx(ctx).Info().Str("email", email).Msg("User registered")
	return email, nil
}

// Verify checks credentials and returns the normalized email.
// Unknown users and wrong passwords both return ErrInvalidCredentials.
func (a *Accounts) Verify(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	user, err := a.store.Get(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			logging.Ctx(ctx).Error().Err(err).Msg("User lookup failed")
		}
		_ = bcrypt.CompareHashAndPassword(a.fallbackHash(), []byte(password))
		metrics.RecordAuthAttempt("login", false)
		return "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		metrics.RecordAuthAttempt("login", false)
		return "", ErrInvalidCredentials
	}

	metrics.RecordAuthAttempt("login", true)
	return email, nil
}

// SeedDemoUser creates the demo account unless it already exists.
func (a *Accounts) SeedDemoUser(ctx context.Context) error {
	if _, err := a.store.Get(ctx, DemoEmail); err == nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), a.cost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}
	err = a.store.Create(ctx, &User{Email: DemoEmail, PasswordHash: hash, CreatedAt: time.Now().UTC()})
	if err != nil && !errors.Is(err, ErrUserExists) {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}
	return nil
}

func (a *Accounts) fallbackHash() []byte {
	a.dummyOnce.Do(func() {
		a.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), a.cost)
	})
	return a.dummyHash
}

// MemoryUserStore keeps accounts in process memory. Accounts are lost on restart.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryUserStore creates an empty in-memory store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]User)}
}

// Create implements UserStore.
func (s *MemoryUserStore) Create(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Email]; ok {
		return ErrUserExists
	}
	s.users[u.Email] = *u
	return nil
}

// Get implements UserStore.
func (s *MemoryUserStore) Get(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// Close implements UserStore.
func (s *MemoryUserStore) Close() error { return nil }
