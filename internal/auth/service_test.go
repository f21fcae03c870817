// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petway/cli/internal/backend"
	"petway/cli/internal/domain"
	apperrors "petway/cli/internal/errors"
	"petway/cli/internal/keychain"
	"petway/cli/internal/route"
	"petway/cli/internal/session"
	"petway/cli/internal/validate"
)

// fakeAPI overrides the calls a test needs; anything else panics through the
// nil embedded interface.
type fakeAPI struct {
	backend.API
	login          func(email, password string) (backend.LoginResult, error)
	logout         func() error
	getMe          func() (*domain.UserProfile, error)
	changePassword func(req backend.ChangePasswordRequest) (string, error)
	register       func(req backend.RegisterRequest) (string, error)
	verifyEmail    func(email, code string) (string, error)
	calls          int
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (backend.LoginResult, error) {
	f.calls++
	return f.login(email, password)
}

func (f *fakeAPI) Logout(context.Context) error {
	f.calls++
	return f.logout()
}

func (f *fakeAPI) GetMe(context.Context) (*domain.UserProfile, error) {
	f.calls++
	return f.getMe()
}

func (f *fakeAPI) ChangePassword(_ context.Context, req backend.ChangePasswordRequest) (string, error) {
	f.calls++
	return f.changePassword(req)
}

func (f *fakeAPI) Register(_ context.Context, req backend.RegisterRequest) (string, error) {
	f.calls++
	return f.register(req)
}

func (f *fakeAPI) VerifyEmail(_ context.Context, email, code string) (string, error) {
	f.calls++
	return f.verifyEmail(email, code)
}

func newTestService(api backend.API) (*Service, *Mediator, *session.Store) {
	store := session.New(keychain.NewMemoryManager(), nil)
	m := NewMediator(store, nil)
	return NewService(api, m, store, nil), m, store
}

func boolPtr(b bool) *bool { return &b }

func TestLoginUnverifiedGoesToVerifyEmail(t *testing.T) {
	api := &fakeAPI{login: func(string, string) (backend.LoginResult, error) {
		return backend.LoginResult{Token: "a.b.c", User: &domain.UserProfile{ID: "u1", Verified: boolPtr(false)}}, nil
	}}
	svc, m, store := newTestService(api)

	out, err := svc.Login(context.Background(), validate.LoginForm{Email: "ana@example.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, route.VerifyEmail, out.Next)
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "a.b.c", store.Token())
}

func TestLoginVerifiedOrUnknownGoesHome(t *testing.T) {
	for name, user := range map[string]*domain.UserProfile{
		"verified": {ID: "u1", Verified: boolPtr(true)},
		"no flag":  {ID: "u1"},
		"no user":  nil,
	} {
		t.Run(name, func(t *testing.T) {
			api := &fakeAPI{login: func(string, string) (backend.LoginResult, error) {
				return backend.LoginResult{Token: "a.b.c", User: user}, nil
			}}
			svc, _, _ := newTestService(api)
			out, err := svc.Login(context.Background(), validate.LoginForm{Email: "ana@example.com", Password: "pw"})
			require.NoError(t, err)
			assert.Equal(t, route.Home, out.Next)
		})
	}
}

func TestLoginValidationSendsNothing(t *testing.T) {
	api := &fakeAPI{}
	svc, m, _ := newTestService(api)

	_, err := svc.Login(context.Background(), validate.LoginForm{Email: "not-an-email", Password: "pw"})

	assert.True(t, apperrors.Is(err, apperrors.Validation))
	assert.Zero(t, api.calls)
	assert.False(t, m.IsAuthenticated())
}

func TestLoginRejectedKeepsAnonymous(t *testing.T) {
	api := &fakeAPI{login: func(string, string) (backend.LoginResult, error) {
		return backend.LoginResult{}, apperrors.New(apperrors.Rejected, "Credenciales inválidas")
	}}
	svc, m, store := newTestService(api)

	out, err := svc.Login(context.Background(), validate.LoginForm{Email: "ana@example.com", Password: "pw"})

	assert.Equal(t, "Credenciales inválidas", apperrors.UserMessage(err))
	assert.Equal(t, route.Login, out.Next)
	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, store.Token())
}

func TestLogoutClearsEvenWhenServerFails(t *testing.T) {
	api := &fakeAPI{logout: func() error { return apperrors.New(apperrors.Transport, backend.NoResponseMessage) }}
	svc, m, store := newTestService(api)
	require.NoError(t, m.LoggedIn("tok", nil))

	require.NoError(t, svc.Logout(context.Background()))

	assert.Equal(t, 1, api.calls)
	assert.False(t, m.IsAuthenticated())
	assert.False(t, store.Read().Authenticated)
}

func TestLogoutWithoutTokenSkipsServer(t *testing.T) {
	api := &fakeAPI{}
	svc, _, _ := newTestService(api)
	require.NoError(t, svc.Logout(context.Background()))
	assert.Zero(t, api.calls)
}

func TestRegisterLeadsToLogin(t *testing.T) {
	var sent backend.RegisterRequest
	api := &fakeAPI{register: func(req backend.RegisterRequest) (string, error) {
		sent = req
		return "Usuario registrado", nil
	}}
	svc, _, _ := newTestService(api)

	msg, next, err := svc.Register(context.Background(), validate.RegisterForm{Name: " Ana ", Email: "ana@example.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "Usuario registrado", msg)
	assert.Equal(t, route.Login, next)
	assert.Equal(t, "Ana", sent.Name)
}

func TestChangePasswordOmitsUnchangedQuestion(t *testing.T) {
	var sent backend.ChangePasswordRequest
	api := &fakeAPI{changePassword: func(req backend.ChangePasswordRequest) (string, error) {
		sent = req
		return "ok", nil
	}}
	svc, _, _ := newTestService(api)

	_, err := svc.ChangePassword(context.Background(), validate.ChangePasswordForm{Password: "longenough", Confirm: "longenough", Answer: "ignored"})
	require.NoError(t, err)
	assert.Empty(t, sent.SecretQuestion)
	assert.Empty(t, sent.SecretAnswer)

	_, err = svc.ChangePassword(context.Background(), validate.ChangePasswordForm{
		Password: "longenough", Confirm: "longenough",
		Question: validate.SecurityQuestions[3], Answer: " pizza ",
	})
	require.NoError(t, err)
	assert.Equal(t, validate.SecurityQuestions[3], sent.SecretQuestion)
	assert.Equal(t, "pizza", sent.SecretAnswer)
}

func TestMeFallsBackToCacheOnTransportFailure(t *testing.T) {
	api := &fakeAPI{getMe: func() (*domain.UserProfile, error) {
		return nil, apperrors.Wrap(apperrors.Transport, backend.NoResponseMessage, errors.New("dial"))
	}}
	svc, m, _ := newTestService(api)
	require.NoError(t, m.LoggedIn("tok", &domain.UserProfile{ID: "u1", Name: "Ana"}))

	u, err := svc.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
}

func TestMeRefreshesCache(t *testing.T) {
	api := &fakeAPI{getMe: func() (*domain.UserProfile, error) {
		return &domain.UserProfile{ID: "u1", Name: "Ana María"}, nil
	}}
	svc, m, store := newTestService(api)
	require.NoError(t, m.LoggedIn("tok", &domain.UserProfile{ID: "u1", Name: "Ana"}))

	_, err := svc.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana María", store.Read().CachedUser.Name)
}

func TestMeAnonymous(t *testing.T) {
	svc, _, _ := newTestService(&fakeAPI{})
	u, err := svc.Me(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestVerifyEmailNextView(t *testing.T) {
	api := &fakeAPI{verifyEmail: func(string, string) (string, error) { return "Email verificado", nil }}
	svc, m, store := newTestService(api)

	_, next, err := svc.VerifyEmail(context.Background(), validate.VerifyEmailForm{Email: "ana@example.com", Code: "123456"})
	require.NoError(t, err)
	assert.Equal(t, route.Login, next)

	require.NoError(t, m.LoggedIn("tok", &domain.UserProfile{ID: "u1", Verified: boolPtr(false)}))
	_, next, err = svc.VerifyEmail(context.Background(), validate.VerifyEmailForm{Email: "ana@example.com", Code: "123456"})
	require.NoError(t, err)
	assert.Equal(t, route.Home, next)
	assert.False(t, store.Read().CachedUser.NeedsVerification())
}
