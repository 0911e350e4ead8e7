package repository

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/nacl/secretbox"

	"willspark/internal/db"
)

// TokenKey is the fixed key the bearer token is persisted under.
const TokenKey = "token"

// LocalStore is the client's durable key/value storage.
type LocalStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type sqlLocalStore struct {
	conn    *sql.DB
	dialect db.Dialect
}

// NewSQLLocalStore keeps entries in the local_storage table of a SQLite or
// Postgres database opened with db.Open.
func NewSQLLocalStore(conn *sql.DB, dialect db.Dialect) LocalStore {
	return &sqlLocalStore{conn: conn, dialect: dialect}
}

func (s *sqlLocalStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry db.LocalEntry
	query := "SELECT key, value, updated_at FROM local_storage WHERE key = " + s.dialect.Placeholder(1)
	err := s.conn.QueryRowContext(ctx, query, key).Scan(&entry.Key, &entry.Value, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %q from local store: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *sqlLocalStore) Set(ctx context.Context, key, value string) error {
	p := s.dialect.Placeholder
	query := fmt.Sprintf(`
		INSERT INTO local_storage (key, value, updated_at) VALUES (%s, %s, %s)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		p(1), p(2), p(3))
	if _, err := s.conn.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write %q to local store: %w", key, err)
	}
	return nil
}

func (s *sqlLocalStore) Remove(ctx context.Context, key string) error {
	query := "DELETE FROM local_storage WHERE key = " + s.dialect.Placeholder(1)
	if _, err := s.conn.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("remove %q from local store: %w", key, err)
	}
	return nil
}

// sealedStore encrypts values at rest with NaCl secretbox.
type sealedStore struct {
	inner LocalStore
	key   [32]byte
}

// NewSealedStore wraps inner so values are encrypted with a key derived from secret.
func NewSealedStore(inner LocalStore, secret string) LocalStore {
	return &sealedStore{inner: inner, key: sha256.Sum256([]byte(secret))}
}

func (s *sealedStore) Get(ctx context.Context, key string) (string, bool, error) {
	sealed, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < 24 {
		return "", false, fmt.Errorf("local store value %q is not sealed", key)
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, &s.key)
	if !ok {
		return "", false, fmt.Errorf("local store value %q cannot be opened with this secret", key)
	}
	return string(plain), true, nil
}

func (s *sealedStore) Set(ctx context.Context, key, value string) error {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("seal %q: %w", key, err)
	}
	box := secretbox.Seal(nonce[:], []byte(value), &nonce, &s.key)
	return s.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(box))
}

func (s *sealedStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}

// MemoryStore is a process-local LocalStore, used when nothing durable is configured.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
