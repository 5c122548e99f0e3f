// Package session keeps the single authoritative record of who is logged in
// and with which bearer token, mirrored to durable key/value storage so it
// survives a restart.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/questionnaire/internal/client/models"
	"github.com/dmitrijs2005/questionnaire/internal/client/repositories/kv"
	"github.com/dmitrijs2005/questionnaire/internal/logging"
)

// Store owns the session. The storage is a mirror: it is read back once by
// Initialize, after which the in-memory copy is authoritative.
//
// Login and Logout write token and user in one storage transaction.
// SetToken and SetUser are deliberately permissive: a caller using them
// directly is responsible for keeping the pair consistent.
type Store struct {
	mu      sync.RWMutex
	token   string
	user    *models.User
	storage kv.Storage
	logger  logging.Logger
	now     func() time.Time
}

func NewStore(storage kv.Storage, logger logging.Logger) *Store {
	return &Store{
		storage: storage,
		logger:  logger.With("component", "session"),
		now:     time.Now,
	}
}

// Initialize loads token and user from storage. A stored user that does not
// decode is logged and skipped; the token is still applied. Storage read
// errors are returned.
func (s *Store) Initialize(ctx context.Context) error {
	rawToken, err := s.storage.Get(ctx, kv.KeyToken)
	if err != nil {
		return err
	}
	rawUser, err := s.storage.Get(ctx, kv.KeyUser)
	if err != nil {
		return err
	}

	var user *models.User
	if len(rawUser) > 0 {
		var u models.User
		if err := json.Unmarshal(rawUser, &u); err != nil {
			s.logger.Error(ctx, "failed to parse stored user", "error", err)
		} else {
			user = &u
		}
	}

	token := string(rawToken)
	if exp, ok := TokenExpiry(token); ok && exp.Before(s.now()) {
		s.logger.Warn(ctx, "stored token has expired", "expired_at", exp)
	}

	s.mu.Lock()
	if token != "" {
		s.token = token
	}
	if user != nil {
		s.user = user
	}
	s.mu.Unlock()

	s.logger.Debug(ctx, "session initialized", "logged_in", s.IsLoggedIn())
	return nil
}

// SetUser replaces the user. nil removes the durable copy.
func (s *Store) SetUser(ctx context.Context, user *models.User) error {
	if err := writeUser(ctx, s.storage, user); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = cloneUser(user)
	s.mu.Unlock()
	return nil
}

// SetToken replaces the token. "" removes the durable copy.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if err := writeToken(ctx, s.storage, token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Login stores token and user together. Memory is only updated once both
// writes are committed.
func (s *Store) Login(ctx context.Context, token string, user models.User) error {
	err := s.storage.Atomic(ctx, func(ctx context.Context, r kv.Repository) error {
		if err := writeToken(ctx, r, token); err != nil {
			return err
		}
		return writeUser(ctx, r, &user)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	s.logger.Info(ctx, "logged in", "username", user.Username)
	return nil
}

// Logout clears token and user in memory and storage, whatever the prior
// state.
func (s *Store) Logout(ctx context.Context) error {
	err := s.storage.Atomic(ctx, func(ctx context.Context, r kv.Repository) error {
		if err := writeToken(ctx, r, ""); err != nil {
			return err
		}
		return writeUser(ctx, r, nil)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.logger.Info(ctx, "logged out")
	return nil
}

// IsLoggedIn reports whether both token and user are set.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Token returns the current bearer token or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.user)
}

func writeToken(ctx context.Context, r kv.Repository, token string) error {
	if token == "" {
		return r.Delete(ctx, kv.KeyToken)
	}
	return r.Set(ctx, kv.KeyToken, []byte(token))
}

func writeUser(ctx context.Context, r kv.Repository, user *models.User) error {
	if user == nil {
		return r.Delete(ctx, kv.KeyUser)
	}
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return r.Set(ctx, kv.KeyUser, b)
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
