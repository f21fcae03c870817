// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petway/cli/internal/domain"
	apperrors "petway/cli/internal/errors"
	"petway/cli/internal/keychain"
)

// recordingKV is an in-memory KV that remembers removal order.
type recordingKV struct {
	mu      sync.Mutex
	data    map[string]string
	removed []string
}

func newRecordingKV() *recordingKV { return &recordingKV{data: map[string]string{}} }

func (r *recordingKV) Get(key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[key], nil
}

func (r *recordingKV) Set(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}

func (r *recordingKV) Remove(keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.data, k)
		r.removed = append(r.removed, k)
	}
	return nil
}

func TestSaveThenRead(t *testing.T) {
	s := New(keychain.NewMemoryManager(), nil)
	profile := &domain.UserProfile{ID: "u1", Name: "Ana", Email: "ana@example.com"}

	require.NoError(t, s.Save("tok", profile))

	got := s.Read()
	assert.Equal(t, "tok", got.Token)
	assert.True(t, got.Authenticated)
	require.NotNil(t, got.CachedUser)
	assert.Equal(t, "u1", got.CachedUser.ID)
	assert.Equal(t, "tok", s.Token())
}

func TestClearRemovesEverything(t *testing.T) {
	s := New(keychain.NewMemoryManager(), nil)
	require.NoError(t, s.Save("tok", &domain.UserProfile{ID: "u1"}))

	require.NoError(t, s.Clear())

	got := s.Read()
	assert.Empty(t, got.Token)
	assert.False(t, got.Authenticated)
	assert.Nil(t, got.CachedUser)
}

func TestClearRemovesFlagFirst(t *testing.T) {
	kv := newRecordingKV()
	s := New(kv, nil)
	require.NoError(t, s.Save("tok", nil))

	kv.removed = nil
	require.NoError(t, s.Clear())

	assert.Equal(t, []string{keychain.KeyAuth, keychain.KeyToken, keychain.KeyProfile}, kv.removed)
}

func TestStaleFlagWithoutTokenIsAnonymous(t *testing.T) {
	kv := keychain.NewMemoryManager()
	require.NoError(t, kv.Set(keychain.KeyAuth, "true"))

	got := New(kv, nil).Read()
	assert.False(t, got.Authenticated)
	assert.Empty(t, got.Token)
}

func TestTokenWithoutFlagIsNotAuthenticated(t *testing.T) {
	kv := keychain.NewMemoryManager()
	require.NoError(t, kv.Set(keychain.KeyToken, "tok"))

	got := New(kv, nil).Read()
	assert.False(t, got.Authenticated)
	assert.Equal(t, "tok", got.Token)
}

func TestCorruptProfileIsDropped(t *testing.T) {
	kv := keychain.NewMemoryManager()
	require.NoError(t, kv.Set(keychain.KeyToken, "tok"))
	require.NoError(t, kv.Set(keychain.KeyAuth, "true"))
	require.NoError(t, kv.Set(keychain.KeyProfile, "{not json"))

	got := New(kv, nil).Read()
	assert.True(t, got.Authenticated)
	assert.Nil(t, got.CachedUser)
}

func TestSaveWithoutProfileDropsPreviousOne(t *testing.T) {
	s := New(keychain.NewMemoryManager(), nil)
	require.NoError(t, s.Save("first", &domain.UserProfile{ID: "old"}))
	require.NoError(t, s.Save("second", nil))

	assert.Nil(t, s.Read().CachedUser)
}

func TestSaveRejectsEmptyToken(t *testing.T) {
	s := New(keychain.NewMemoryManager(), nil)
	err := s.Save("  ", nil)
	assert.True(t, apperrors.Is(err, apperrors.Validation))
	assert.False(t, s.Read().Authenticated)
}

func TestUpdateProfileNeedsToken(t *testing.T) {
	s := New(keychain.NewMemoryManager(), nil)
	require.NoError(t, s.UpdateProfile(&domain.UserProfile{ID: "u1"}))
	assert.Nil(t, s.Read().CachedUser)

	require.NoError(t, s.Save("tok", nil))
	require.NoError(t, s.UpdateProfile(&domain.UserProfile{ID: "u1", Name: "Ana"}))
	assert.Equal(t, "Ana", s.Read().CachedUser.Name)
}

func TestConcurrentSaveAndClear(t *testing.T) {
	s := New(keychain.NewMemoryManager(), nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Save("tok", nil)
		}()
		go func() {
			defer wg.Done()
			_ = s.Clear()
		}()
	}
	wg.Wait()

	got := s.Read()
	if got.Authenticated {
		assert.NotEmpty(t, got.Token)
	}
}
