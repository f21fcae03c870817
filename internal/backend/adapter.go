// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend is the HTTP gateway to the PetWay API. Every call attaches
// the stored bearer token, and every failure comes back as a typed error from
// internal/errors. Authentication failures additionally end the local session
// and send the user to the login view.
package backend

import (
	"context"
	"io"

	"petway/cli/internal/domain"
)

// API defines backend operations the CLI depends on.
// Implementations may call the real HTTP API or provide fakes for tests.
type API interface {
	// Account
	Register(ctx context.Context, req RegisterRequest) (string, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	SecurityQuestion(ctx context.Context, email string) (string, error)
	VerifyAnswer(ctx context.Context, email, answer string) (AnswerResult, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) (string, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) (string, error)
	VerifyEmail(ctx context.Context, email, code string) (string, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	// GetMe returns the profile of the token's owner.
	GetMe(ctx context.Context) (*domain.UserProfile, error)
	// UpdateMe changes the display name of the signed-in user.
	UpdateMe(ctx context.Context, name string) (*domain.UserProfile, error)
	// Logout tells the server the token is no longer in use.
	Logout(ctx context.Context) error

	// Listings
	ListPets(ctx context.Context) ([]domain.Pet, error)
	ListMyPets(ctx context.Context) ([]domain.Pet, error)
	GetPet(ctx context.Context, id string) (*domain.Pet, error)
	NearPets(ctx context.Context, lat, lng float64, radius int) ([]domain.Pet, error)
	CreatePet(ctx context.Context, p NewPet, photo *Photo) (*domain.Pet, error)
	SetPetStatus(ctx context.Context, id string, status domain.Status) (string, error)
	DeletePet(ctx context.Context, id string) (string, error)
}

// RegisterRequest is the body of POST /usuarios.
type RegisterRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is what POST /usuarios/login hands back.
type LoginResult struct {
	Token string              `json:"token"`
	User  *domain.UserProfile `json:"usuario,omitempty"`
	Msg   string              `json:"msg,omitempty"`
}

// AnswerResult carries the short-lived reset token issued for a correct
// security answer.
type AnswerResult struct {
	Msg        string `json:"msg"`
	ResetToken string `json:"token"`
}

// ChangePasswordRequest is the body of POST /usuarios/cambiar-password. The
// question fields are sent only when the user picks a new question.
type ChangePasswordRequest struct {
	Password       string `json:"password"`
	SecretQuestion string `json:"preguntaSecreta,omitempty"`
	SecretAnswer   string `json:"respuestaSecreta,omitempty"`
}

// NewPet is the text part of the multipart create form. Lat and Lng are
// required by the server.
type NewPet struct {
	Name        string
	Kind        string
	Breed       string
	Age         string
	Description string
	City        string
	Phone       string
	Lat         float64
	Lng         float64
}

// Photo is the optional image part of the create form.
type Photo struct {
	Filename string
	Reader   io.Reader
}
