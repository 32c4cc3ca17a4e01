package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/osantanna/livraria-pos/pkg/errors"
)

// SessionStore tracks the admin session and the token blacklist.
//
// The store has a single administrator identity, so session state is keyed
// by a fixed name rather than a user id. The blacklist makes logout
// effective despite JWT being stateless: a revoked token stays listed until
// its own expiry, after which Redis drops the key.
//
// Key layout: session:admin, blacklist:{token}.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

const adminSessionKey = "session:admin"

// SaveSession records an admin login (timestamp, client address) with the
// refresh token lifetime as TTL.
func (s *SessionStore) SaveSession(ctx context.Context, data map[string]interface{}, ttl time.Duration) error {
	if err := s.client.HSet(ctx, adminSessionKey, data).Err(); err != nil {
		return apperrors.Wrap(err, "saving session")
	}
	if err := s.client.Expire(ctx, adminSessionKey, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "setting session expiry")
	}
	return nil
}

// GetSession returns the current admin session fields, or ErrUnauthorized
// when no session exists.
func (s *SessionStore) GetSession(ctx context.Context) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, adminSessionKey).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "reading session")
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return result, nil
}

// DeleteSession clears the admin session on logout.
func (s *SessionStore) DeleteSession(ctx context.Context) error {
	if err := s.client.Del(ctx, adminSessionKey).Err(); err != nil {
		return apperrors.Wrap(err, "deleting session")
	}
	return nil
}

// AddToBlacklist revokes a token. ttl should match the token's remaining
// lifetime so the entry cleans itself up.
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	key := fmt.Sprintf("blacklist:%s", token)
	if err := s.client.Set(ctx, key, "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "blacklisting token")
	}
	return nil
}

// IsInBlacklist reports whether a token was revoked.
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", token)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "checking blacklist")
	}
	return exists > 0, nil
}
