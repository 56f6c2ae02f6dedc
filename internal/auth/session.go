package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 24 * time.Hour
)

// Identity is the per-session record of who is logged in.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"user_name"`
}

// Store manages sessions in Redis. The client only ever holds the opaque
// token; the identity payload stays server-side.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a new session store.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Create stores a new session for the identity and returns its token.
func (s *Store) Create(ctx context.Context, id Identity) (string, error) {
	token, err := newSessionID()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(id)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get returns the identity for a session token, with ok=false when the
// session is missing or expired.
func (s *Store) Get(ctx context.Context, token string) (Identity, bool) {
	b, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		return Identity{}, false
	}
	var id Identity
	if err := json.Unmarshal(b, &id); err != nil {
		return Identity{}, false
	}
	return id, true
}

// Delete removes a session by token. Deleting an absent session is not
// an error.
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
