// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"strings"

	apperrors "petway/cli/internal/errors"
)

// msgReply is the common {"msg": "..."} acknowledgement.
type msgReply struct {
	Msg string `json:"msg"`
}

// Register calls POST /usuarios and returns the server's acknowledgement.
func (h *HTTP) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var out msgReply
	if err := h.call(ctx, http.MethodPost, "/usuarios", req, &out); err != nil {
		return "", err
	}
	return out.Msg, nil
}

// Login calls POST /usuarios/login. A reply without a token is treated as a
// rejection so callers never persist an empty session.
func (h *HTTP) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := h.call(ctx, http.MethodPost, "/usuarios/login", body, &out); err != nil {
		return LoginResult{}, err
	}
	out.Token = strings.TrimSpace(out.Token)
	if out.Token == "" {
		return LoginResult{}, apperrors.New(apperrors.Rejected, BadResponseMessage)
	}
	h.forgetMe()
	return out, nil
}

// SecurityQuestion calls POST /usuarios/obtener-pregunta.
func (h *HTTP) SecurityQuestion(ctx context.Context, email string) (string, error) {
	var out struct {
		Question string `json:"preguntaSecreta"`
	}
	if err := h.call(ctx, http.MethodPost, "/usuarios/obtener-pregunta", map[string]string{"email": email}, &out); err != nil {
		return "", err
	}
	if out.Question == "" {
		return "", apperrors.New(apperrors.Rejected, BadResponseMessage)
	}
	return out.Question, nil
}

// VerifyAnswer calls POST /usuarios/verificar-respuesta. A correct answer
// yields a reset token.
func (h *HTTP) VerifyAnswer(ctx context.Context, email, answer string) (AnswerResult, error) {
	body := map[string]string{"email": email, "respuesta": answer}
	var out AnswerResult
	if err := h.call(ctx, http.MethodPost, "/usuarios/verificar-respuesta", body, &out); err != nil {
		return AnswerResult{}, err
	}
	if out.ResetToken == "" {
		return AnswerResult{}, apperrors.New(apperrors.Rejected, BadResponseMessage)
	}
	return out, nil
}

// ResetPassword calls POST /usuarios/restablecer-password.
func (h *HTTP) ResetPassword(ctx context.Context, resetToken, newPassword string) (string, error) {
	body := map[string]string{"token": resetToken, "nuevaPassword": newPassword}
	var out msgReply
	if err := h.call(ctx, http.MethodPost, "/usuarios/restablecer-password", body, &out); err != nil {
		return "", err
	}
	return out.Msg, nil
}

// ChangePassword calls POST /usuarios/cambiar-password with the session token.
func (h *HTTP) ChangePassword(ctx context.Context, req ChangePasswordRequest) (string, error) {
	var out msgReply
	if err := h.call(ctx, http.MethodPost, "/usuarios/cambiar-password", req, &out); err != nil {
		return "", err
	}
	return out.Msg, nil
}

// VerifyEmail calls POST /usuarios/verify-email.
func (h *HTTP) VerifyEmail(ctx context.Context, email, code string) (string, error) {
	body := map[string]string{"email": email, "code": code}
	var out msgReply
	if err := h.call(ctx, http.MethodPost, "/usuarios/verify-email", body, &out); err != nil {
		return "", err
	}
	h.forgetMe()
	return out.Msg, nil
}

// ResendVerification calls POST /usuarios/resend-verification.
func (h *HTTP) ResendVerification(ctx context.Context, email string) (string, error) {
	var out msgReply
	if err := h.call(ctx, http.MethodPost, "/usuarios/resend-verification", map[string]string{"email": email}, &out); err != nil {
		return "", err
	}
	return out.Msg, nil
}

// Logout calls POST /usuarios/logout and drops the cached profile whatever
// the outcome. A refused token does not trigger the expiry notice.
func (h *HTTP) Logout(ctx context.Context) error {
	defer h.forgetMe()
	return h.call(quiet(ctx), http.MethodPost, "/usuarios/logout", nil, nil)
}
