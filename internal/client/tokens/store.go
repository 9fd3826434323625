// Package tokens keeps the session token in client storage under the
// "token" key.
package tokens

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/client/storage"
	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

type Store struct {
	kv  storage.KV
	now func() time.Time
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// Get returns the stored token or "" when none is present.
func (s *Store) Get(ctx context.Context) (string, error) {
	b, err := s.kv.Get(ctx, common.TokenKey)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Store) Save(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrInvalidToken
	}
	return s.kv.Set(ctx, common.TokenKey, []byte(token))
}

func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, common.TokenKey)
}

// Expired reports whether token carries an exp claim in the past. The
// signature is not checked; only the server can do that. Tokens that are
// not JWTs, or carry no exp, are treated as live and left to the server.
func (s *Store) Expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return !s.now().Before(claims.ExpiresAt.Time)
}

// Load returns the stored token, clearing it first when it has expired.
func (s *Store) Load(ctx context.Context) (string, error) {
	token, err := s.Get(ctx)
	if err != nil || token == "" {
		return "", err
	}
	if s.Expired(token) {
		if err := s.Clear(ctx); err != nil {
			return "", err
		}
		return "", errors.Join(common.ErrInvalidToken, jwt.ErrTokenExpired)
	}
	return token, nil
}
