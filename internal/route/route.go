// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package route tracks which petway view is active and gates the views that
// need a signed-in user.
package route

import "sync"

// View names a screen of the client.
type View string

const (
	Home            View = "home"
	Search          View = "search"
	Login           View = "login"
	Register        View = "register"
	RecoverPassword View = "recover-password"
	VerifyQuestion  View = "verify-question"
	ResetPassword   View = "reset-password"
	ChangePassword  View = "change-password"
	Publish         View = "publish"
	PetDetail       View = "pet-detail"
	VerifyEmail     View = "verify-email"
	MyPets          View = "my-pets"
)

var protected = map[View]bool{
	ChangePassword: true,
	Publish:        true,
	MyPets:         true,
}

// Protected reports whether v requires an authenticated session.
func Protected(v View) bool { return protected[v] }

// AuthState is what the router asks before entering a protected view.
type AuthState interface {
	IsAuthenticated() bool
}

// Router holds the current view. Safe for concurrent use.
type Router struct {
	mu        sync.Mutex
	auth      AuthState
	current   View
	listeners []func(View)
}

// NewRouter starts at Home.
func NewRouter(auth AuthState) *Router {
	return &Router{auth: auth, current: Home}
}

// Guard returns the view that would actually be shown for v: Login when v is
// protected and nobody is signed in, v otherwise.
func (r *Router) Guard(v View) View {
	if Protected(v) && (r.auth == nil || !r.auth.IsAuthenticated()) {
		return Login
	}
	return v
}

// Enter navigates to Guard(v) and returns where it landed.
func (r *Router) Enter(v View) View {
	dest := r.Guard(v)
	r.Navigate(dest)
	return dest
}

// Navigate moves to v unconditionally and notifies listeners.
func (r *Router) Navigate(v View) {
	r.mu.Lock()
	r.current = v
	ls := append([]func(View){}, r.listeners...)
	r.mu.Unlock()

	for _, fn := range ls {
		fn(v)
	}
}

// Current returns the active view.
func (r *Router) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// At reports whether v is the active view.
func (r *Router) At(v View) bool { return r.Current() == v }

// OnNavigate registers fn to run after every navigation.
func (r *Router) OnNavigate(fn func(View)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}
