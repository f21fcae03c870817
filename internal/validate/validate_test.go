// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "petway/cli/internal/errors"
)

func TestStruct(t *testing.T) {
	lat, lng, nan := -12.05, -77.03, math.NaN()

	tests := []struct {
		name    string
		form    any
		wantMsg string
	}{
		{"login ok", LoginForm{Email: "ana@example.com", Password: "x"}, ""},
		{"login bad email", LoginForm{Email: "ana@example", Password: "x"}, "please enter a valid email address"},
		{"login email with space", LoginForm{Email: "a na@ex.com", Password: "x"}, "please enter a valid email address"},
		{"login blank password", LoginForm{Email: "ana@example.com", Password: "   "}, "password is required"},
		{"register no name", RegisterForm{Email: "ana@example.com", Password: "x"}, "name is required"},
		{"reset short", ResetPasswordForm{ResetToken: "t", Password: "short", Confirm: "short"}, "password must be at least 8 characters"},
		{"reset mismatch", ResetPasswordForm{ResetToken: "t", Password: "longenough", Confirm: "different1"}, "passwords do not match"},
		{"change ok without question", ChangePasswordForm{Password: "longenough", Confirm: "longenough"}, ""},
		{"change question without answer", ChangePasswordForm{Password: "longenough", Confirm: "longenough", Question: SecurityQuestions[1]}, "an answer is required when changing the security question"},
		{"change unknown question", ChangePasswordForm{Password: "longenough", Confirm: "longenough", Question: "Color?", Answer: "azul"}, "choose one of the listed security questions"},
		{"change ok with question", ChangePasswordForm{Password: "longenough", Confirm: "longenough", Question: SecurityQuestions[0], Answer: "Firulais"}, ""},
		{"verify no code", VerifyEmailForm{Email: "ana@example.com"}, "code is required"},
		{"pet ok", PetForm{Name: "Toby", Kind: "perro", City: "Lima", Lat: &lat, Lng: &lng}, ""},
		{"pet no city", PetForm{Name: "Toby", Kind: "perro", Lat: &lat, Lng: &lng}, "city is required"},
		{"pet no location", PetForm{Name: "Toby", Kind: "perro", City: "Lima"}, "latitude is required"},
		{"pet NaN", PetForm{Name: "Toby", Kind: "perro", City: "Lima", Lat: &nan, Lng: &lng}, "a valid location (latitude and longitude) is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.form)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.Is(err, apperrors.Validation))
			assert.Equal(t, tt.wantMsg, apperrors.UserMessage(err))
		})
	}
}

func TestSecurityQuestions(t *testing.T) {
	assert.Len(t, SecurityQuestions, 4)
	assert.True(t, IsSecurityQuestion("¿En qué ciudad naciste?"))
	assert.False(t, IsSecurityQuestion(""))
}
