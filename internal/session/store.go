// ABOUTME: Login session storage backed by an embedded badger KV store.
// ABOUTME: Uses prefixed keys (session:token) with a TTL per entry.

package session

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// KeyPrefix is the key prefix for sessions.
	KeyPrefix = "session:"

	// DefaultTTL matches a two-week login cookie.
	DefaultTTL = 14 * 24 * time.Hour

	tokenBytes = 32
)

var ErrNoSession = errors.New("session not found")

// Data is the value stored for each session token.
type Data struct {
	UserID    string `json:"user_id"`
	CreatedAt int64  `json:"created_at"`
}

// Store issues and resolves opaque session tokens.
type Store struct {
	kv  *badger.DB
	ttl time.Duration
}

// Options configures a Store.
type Options struct {
	// Dir is the badger directory. Empty means in-memory.
	Dir    string
	TTL    time.Duration
	Logger *zap.Logger
}

// Open opens (or creates) the session database.
func Open(opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.Dir == "" {
		bopts = bopts.WithInMemory(true)
	}
	if opts.Logger != nil {
		bopts = bopts.WithLogger(badgerLogger{opts.Logger.Sugar().Named("badger")})
	} else {
		bopts = bopts.WithLogger(nil)
	}

	kv, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{kv: kv, ttl: ttl}, nil
}

func sessionKey(token string) []byte {
	return []byte(KeyPrefix + token)
}

// TTL returns how long new sessions live.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create starts a session for the user and returns its token.
func (s *Store) Create(userID uuid.UUID) (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	encoded, err := json.Marshal(Data{UserID: userID.String(), CreatedAt: time.Now().Unix()})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	err = s.kv.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(sessionKey(token), encoded).WithTTL(s.ttl))
	})
	if err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Lookup resolves a token to the user it was issued for.
func (s *Store) Lookup(token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrNoSession
	}

	var data Data
	err := s.kv.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(token))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &data)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return uuid.Nil, ErrNoSession
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("read session: %w", err)
	}

	id, err := uuid.Parse(data.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse session user ID: %w", err)
	}
	return id, nil
}

// Destroy removes the session. Unknown tokens are not an error.
func (s *Store) Destroy(token string) error {
	if token == "" {
		return nil
	}
	return s.kv.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(token))
	})
}

// Count returns the number of live sessions.
func (s *Store) Count() (int, error) {
	count := 0
	err := s.kv.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(KeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

func (s *Store) Close() error {
	return s.kv.Close()
}

// badgerLogger adapts zap to badger's Logger interface.
type badgerLogger struct {
	l *zap.SugaredLogger
}

func (b badgerLogger) Errorf(f string, v ...interface{})   { b.l.Errorf(f, v...) }
func (b badgerLogger) Warningf(f string, v ...interface{}) { b.l.Warnf(f, v...) }
func (b badgerLogger) Infof(f string, v ...interface{})    { b.l.Debugf(f, v...) }
func (b badgerLogger) Debugf(f string, v ...interface{})   { b.l.Debugf(f, v...) }
