// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth provides the account flows of the PetWay client: sign-up,
// sign-in and sign-out, email verification, password recovery through a
// security question, and password change. The Mediator tracks whether a
// session is active; the Service drives the flows against the backend and
// reports which view should come next.
package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"petway/cli/internal/backend"
	"petway/cli/internal/domain"
	apperrors "petway/cli/internal/errors"
	"petway/cli/internal/logging"
	"petway/cli/internal/route"
	"petway/cli/internal/session"
	"petway/cli/internal/validate"
)

// Service centralizes authentication-related operations against the backend
// and the local session.
type Service struct {
	be       backend.API
	mediator *Mediator
	store    *session.Store
	log      *zap.SugaredLogger
}

// NewService wires the flows to a backend and the session state.
func NewService(be backend.API, mediator *Mediator, store *session.Store, log *zap.SugaredLogger) *Service {
	return &Service{be: be, mediator: mediator, store: store, log: logging.OrNop(log)}
}

// LoginOutcome tells the caller who signed in and where to go next.
type LoginOutcome struct {
	User *domain.UserProfile
	Next route.View
}

// Register creates an account. On success the user is sent to the login view.
func (s *Service) Register(ctx context.Context, form validate.RegisterForm) (string, route.View, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	if err := validate.Struct(form); err != nil {
		return "", route.Register, err
	}
	msg, err := s.be.Register(ctx, backend.RegisterRequest{Name: form.Name, Email: form.Email, Password: form.Password})
	if err != nil {
		return "", route.Register, err
	}
	return msg, route.Login, nil
}

// Login signs in and persists the session. Accounts the server reports as
// unverified are sent to the email verification view instead of home.
func (s *Service) Login(ctx context.Context, form validate.LoginForm) (LoginOutcome, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := validate.Struct(form); err != nil {
		return LoginOutcome{Next: route.Login}, err
	}
	res, err := s.be.Login(ctx, form.Email, form.Password)
	if err != nil {
		return LoginOutcome{Next: route.Login}, err
	}
	if err := s.mediator.LoggedIn(res.Token, res.User); err != nil {
		return LoginOutcome{Next: route.Login}, err
	}
	s.log.Infow("signed in", "email", form.Email)

	out := LoginOutcome{User: res.User, Next: route.Home}
	if res.User.NeedsVerification() {
		out.Next = route.VerifyEmail
	}
	return out, nil
}

// Logout tells the server (best effort) and always clears the local session.
func (s *Service) Logout(ctx context.Context) error {
	if s.store.Token() != "" {
		if err := s.be.Logout(ctx); err != nil {
			s.log.Debugw("remote logout failed", "error", err)
		}
	}
	return s.mediator.LoggedOut()
}

// Me returns the signed-in profile, refreshed from the server when possible.
// Transport failures fall back to the cached copy; a refused token has
// already ended the session by the time the error comes back.
func (s *Service) Me(ctx context.Context) (*domain.UserProfile, error) {
	sess := s.store.Read()
	if !sess.Authenticated {
		return nil, nil
	}
	u, err := s.be.GetMe(ctx)
	if err != nil {
		if sess.CachedUser != nil && apperrors.Is(err, apperrors.Transport) {
			s.log.Debugw("using cached profile", "error", err)
			return sess.CachedUser, nil
		}
		return nil, err
	}
	if err := s.store.UpdateProfile(u); err != nil {
		s.log.Warnw("could not cache profile", "error", err)
	}
	return u, nil
}

// UpdateName changes the display name of the signed-in user.
func (s *Service) UpdateName(ctx context.Context, name string) (*domain.UserProfile, error) {
	name = strings.TrimSpace(name)
	if err := validate.Struct(struct {
		Name string `label:"name" validate:"notblank"`
	}{name}); err != nil {
		return nil, err
	}
	u, err := s.be.UpdateMe(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateProfile(u); err != nil {
		s.log.Warnw("could not cache profile", "error", err)
	}
	return u, nil
}

// SecurityQuestion starts recovery by fetching the account's question.
func (s *Service) SecurityQuestion(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validate.Struct(struct {
		Email string `validate:"petwayemail"`
	}{email}); err != nil {
		return "", err
	}
	return s.be.SecurityQuestion(ctx, email)
}

// AnswerQuestion checks the answer and returns the reset token.
func (s *Service) AnswerQuestion(ctx context.Context, email, answer string) (backend.AnswerResult, error) {
	if err := validate.Struct(struct {
		Answer string `label:"answer" validate:"notblank"`
	}{answer}); err != nil {
		return backend.AnswerResult{}, err
	}
	return s.be.VerifyAnswer(ctx, strings.TrimSpace(email), answer)
}

// ResetPassword finishes recovery. The user signs in afterwards.
func (s *Service) ResetPassword(ctx context.Context, form validate.ResetPasswordForm) (string, route.View, error) {
	if err := validate.Struct(form); err != nil {
		return "", route.ResetPassword, err
	}
	msg, err := s.be.ResetPassword(ctx, form.ResetToken, form.Password)
	if err != nil {
		return "", route.ResetPassword, err
	}
	return msg, route.Login, nil
}

// ChangePassword updates the password of the signed-in user, and the
// security question when one is chosen.
func (s *Service) ChangePassword(ctx context.Context, form validate.ChangePasswordForm) (string, error) {
	form.Answer = strings.TrimSpace(form.Answer)
	if err := validate.Struct(form); err != nil {
		return "", err
	}
	req := backend.ChangePasswordRequest{Password: form.Password}
	if form.Question != "" {
		req.SecretQuestion = form.Question
		req.SecretAnswer = form.Answer
	}
	return s.be.ChangePassword(ctx, req)
}

// VerifyEmail confirms the emailed code. Signed-in users go home, everyone
// else to the login view.
func (s *Service) VerifyEmail(ctx context.Context, form validate.VerifyEmailForm) (string, route.View, error) {
	form.Email = strings.TrimSpace(form.Email)
	form.Code = strings.TrimSpace(form.Code)
	if err := validate.Struct(form); err != nil {
		return "", route.VerifyEmail, err
	}
	msg, err := s.be.VerifyEmail(ctx, form.Email, form.Code)
	if err != nil {
		return "", route.VerifyEmail, err
	}
	if s.mediator.IsAuthenticated() {
		if u := s.store.Read().CachedUser; u != nil {
			verified := true
			u.Verified = &verified
			_ = s.store.UpdateProfile(u)
		}
		return msg, route.Home, nil
	}
	return msg, route.Login, nil
}

// ResendVerification asks for a new code.
func (s *Service) ResendVerification(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validate.Struct(struct {
		Email string `validate:"petwayemail"`
	}{email}); err != nil {
		return "", err
	}
	return s.be.ResendVerification(ctx, email)
}
