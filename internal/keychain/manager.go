// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain is the durable key/value store behind the petway session.
// It wraps 99designs/keyring so the same three keys (token, auth, usuario)
// can live in the OS credential store, an encrypted file under the XDG state
// dir, or memory for tests and throwaway runs.
package keychain

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	"petway/cli/internal/xdg"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "petway"

// Keys of the persisted session. These names are shared with every other
// PetWay client and must not change.
const (
	KeyToken   = "token"
	KeyAuth    = "auth"
	KeyProfile = "usuario"
)

// Backend names accepted by Options.Backend.
const (
	BackendAuto   = "auto"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Options selects and configures the storage backend.
type Options struct {
	Backend  string
	Dir      string
	Password string
}

// Manager provides thread-safe string access to a keyring.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager wraps an already opened keyring.
func NewManager(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// NewMemoryManager returns a manager over an in-process keyring.
func NewMemoryManager() *Manager {
	return NewManager(keyring.NewArrayKeyring(nil))
}

// Open builds a Manager for the requested backend.
func Open(opts Options) (*Manager, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryManager(), nil
	case BackendFile:
		ring, err := openRing(opts, []keyring.BackendType{keyring.FileBackend})
		if err != nil {
			return nil, err
		}
		return NewManager(ring), nil
	case "", BackendAuto:
		ring, err := openRing(opts, append(nativeBackends(), keyring.FileBackend))
		if err != nil {
			return nil, err
		}
		return NewManager(ring), nil
	default:
		return nil, fmt.Errorf("unknown keyring backend %q", opts.Backend)
	}
}

// nativeBackends lists the OS credential stores tried before the file fallback.
func nativeBackends() []keyring.BackendType {
	switch runtime.GOOS {
	case "darwin":
		return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend}
	default:
		return []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
	}
}

func openRing(opts Options, allowed []keyring.BackendType) (keyring.Keyring, error) {
	dir := opts.Dir
	if dir == "" {
		d, err := xdg.StateDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	password := opts.Password
	if password == "" {
		// The file backend only guards against casual reads; the OS
		// backends are preferred whenever they are available.
		password = ServiceName
	}

	cfg := keyring.Config{
		ServiceName:      ServiceName,
		AllowedBackends:  allowed,
		PassPrefix:       ServiceName,
		WinCredPrefix:    ServiceName,
		FileDir:          dir,
		FilePasswordFunc: keyring.FixedStringPrompt(password),
	}
	return keyring.Open(cfg)
}

// Get returns the stored value, or "" when the key is absent.
func (m *Manager) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(key)
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return string(it.Data), nil
}

// Set stores value under key.
func (m *Manager) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{Key: key, Data: []byte(value), Label: ServiceName + " " + key})
}

// Remove deletes the keys in the given order while holding the write lock,
// so readers never observe a partially removed set. Missing keys are ignored.
func (m *Manager) Remove(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, k := range keys {
		if err := m.ring.Remove(k); err != nil && !isNotFound(err) {
			errs = append(errs, fmt.Errorf("remove %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

func isNotFound(err error) bool {
	return errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, os.ErrNotExist)
}
