// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"sync"

	"go.uber.org/zap"

	"petway/cli/internal/domain"
	"petway/cli/internal/logging"
	"petway/cli/internal/session"
)

// State is the in-process view of whether someone is signed in.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Mediator owns the Anonymous/Authenticated state and keeps it in step with
// the session store. It trusts the store at startup without asking the
// server; a dead token is discovered on the first request that uses it.
type Mediator struct {
	mu        sync.Mutex
	store     *session.Store
	state     State
	listeners []func(State)
	log       *zap.SugaredLogger
}

// NewMediator initializes from the stored session.
func NewMediator(store *session.Store, log *zap.SugaredLogger) *Mediator {
	m := &Mediator{store: store, log: logging.OrNop(log)}
	if store.Read().Authenticated {
		m.state = Authenticated
	}
	return m
}

// State returns the current state.
func (m *Mediator) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated reports whether the state is Authenticated.
func (m *Mediator) IsAuthenticated() bool { return m.State() == Authenticated }

// LoggedIn persists the new session and moves to Authenticated.
func (m *Mediator) LoggedIn(token string, profile *domain.UserProfile) error {
	if err := m.store.Save(token, profile); err != nil {
		return err
	}
	m.set(Authenticated)
	return nil
}

// LoggedOut clears the session and moves to Anonymous.
func (m *Mediator) LoggedOut() error {
	err := m.store.Clear()
	m.set(Anonymous)
	return err
}

// Invalidate is LoggedOut for callers that cannot act on a storage error,
// such as the gateway reacting to a refused token.
func (m *Mediator) Invalidate() {
	if err := m.LoggedOut(); err != nil {
		m.log.Warnw("could not clear session after auth failure", "error", err)
	}
}

// Subscribe registers fn to be called synchronously on every state change.
func (m *Mediator) Subscribe(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Mediator) set(s State) {
	m.mu.Lock()
	changed := m.state != s
	m.state = s
	ls := append([]func(State){}, m.listeners...)
	m.mu.Unlock()

	if !changed {
		return
	}
	m.log.Debugw("auth state changed", "state", s.String())
	for _, fn := range ls {
		fn(s)
	}
}
