// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session persists the signed-in state: the bearer token, the
// authenticated flag and a cached copy of the user profile. The three values
// live under fixed keys in a durable key/value store and are always written
// and removed together.
package session

import (
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"

	"petway/cli/internal/domain"
	apperrors "petway/cli/internal/errors"
	"petway/cli/internal/keychain"
	"petway/cli/internal/logging"
)

const authFlag = "true"

// KV is the storage the Store writes to. *keychain.Manager implements it.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(keys ...string) error
}

// Session is a point-in-time view of the stored values.
type Session struct {
	Token         string
	Authenticated bool
	CachedUser    *domain.UserProfile
}

// Store reads and writes the session keys. Safe for concurrent use.
type Store struct {
	mu  sync.Mutex
	kv  KV
	log *zap.SugaredLogger
}

// New returns a Store over kv. log may be nil.
func New(kv KV, log *zap.SugaredLogger) *Store {
	return &Store{kv: kv, log: logging.OrNop(log)}
}

// Save records a successful sign-in. The auth flag is written last so no
// reader sees it set without a token next to it. A nil profile removes any
// profile cached by a previous user.
func (s *Store) Save(token string, profile *domain.UserProfile) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.New(apperrors.Validation, "cannot save a session without a token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(keychain.KeyToken, token); err != nil {
		return apperrors.Wrap(apperrors.Storage, "could not store session token", err)
	}
	if profile != nil {
		b, err := json.Marshal(profile)
		if err != nil {
			return apperrors.Wrap(apperrors.Storage, "could not encode user profile", err)
		}
		if err := s.kv.Set(keychain.KeyProfile, string(b)); err != nil {
			return apperrors.Wrap(apperrors.Storage, "could not store user profile", err)
		}
	} else if err := s.kv.Remove(keychain.KeyProfile); err != nil {
		return apperrors.Wrap(apperrors.Storage, "could not remove stale user profile", err)
	}
	if err := s.kv.Set(keychain.KeyAuth, authFlag); err != nil {
		return apperrors.Wrap(apperrors.Storage, "could not store auth flag", err)
	}
	s.log.Debugw("session saved", "has_profile", profile != nil)
	return nil
}

// Clear removes the flag, the token and the profile in that order.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(keychain.KeyAuth, keychain.KeyToken, keychain.KeyProfile); err != nil {
		return apperrors.Wrap(apperrors.Storage, "could not clear session", err)
	}
	s.log.Debug("session cleared")
	return nil
}

// Read reconstructs the session. A missing token always wins over a stale
// auth flag. An unreadable profile is dropped rather than reported.
func (s *Store) Read() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.get(keychain.KeyToken)
	sess := Session{
		Token:         token,
		Authenticated: token != "" && s.get(keychain.KeyAuth) == authFlag,
	}
	if raw := s.get(keychain.KeyProfile); raw != "" {
		var u domain.UserProfile
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			s.log.Warnw("discarding unreadable cached profile", "error", err)
		} else {
			sess.CachedUser = &u
		}
	}
	return sess
}

// Token returns the stored token or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(keychain.KeyToken)
}

// UpdateProfile replaces the cached profile without touching the token.
func (s *Store) UpdateProfile(profile *domain.UserProfile) error {
	if profile == nil {
		return nil
	}
	b, err := json.Marshal(profile)
	if err != nil {
		return apperrors.Wrap(apperrors.Storage, "could not encode user profile", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.get(keychain.KeyToken) == "" {
		return nil
	}
	if err := s.kv.Set(keychain.KeyProfile, string(b)); err != nil {
		return apperrors.Wrap(apperrors.Storage, "could not store user profile", err)
	}
	return nil
}

func (s *Store) get(key string) string {
	v, err := s.kv.Get(key)
	if err != nil {
		s.log.Warnw("session read failed", "key", key, "error", err)
		return ""
	}
	return v
}
