// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package validate

// LoginForm is the sign-in input.
type LoginForm struct {
	Email    string `validate:"petwayemail"`
	Password string `validate:"notblank"`
}

// RegisterForm is the account creation input.
type RegisterForm struct {
	Name     string `label:"name" validate:"notblank"`
	Email    string `validate:"petwayemail"`
	Password string `validate:"notblank"`
}

// ResetPasswordForm completes the security-question recovery flow.
type ResetPasswordForm struct {
	ResetToken string `label:"reset token" validate:"notblank"`
	Password   string `validate:"required,min=8"`
	Confirm    string `label:"confirmation" validate:"eqfield=Password"`
}

// ChangePasswordForm changes the password of the signed-in user and
// optionally the security question.
type ChangePasswordForm struct {
	Password string `validate:"required,min=8"`
	Confirm  string `label:"confirmation" validate:"eqfield=Password"`
	Question string `label:"security question" validate:"omitempty,secquestion"`
	Answer   string `label:"answer" validate:"required_with=Question"`
}

// VerifyEmailForm confirms the emailed code.
type VerifyEmailForm struct {
	Email string `validate:"petwayemail"`
	Code  string `label:"code" validate:"notblank"`
}

// PetForm is the listing creation input. Lat and Lng are pointers so a
// missing location is distinguishable from 0,0.
type PetForm struct {
	Name        string   `label:"name" validate:"notblank"`
	Kind        string   `label:"type" validate:"notblank"`
	Breed       string   `label:"breed"`
	Age         string   `label:"age"`
	Description string   `label:"description"`
	City        string   `label:"city" validate:"notblank"`
	Phone       string   `label:"phone"`
	Lat         *float64 `label:"latitude" validate:"required,finite,latitude"`
	Lng         *float64 `label:"longitude" validate:"required,finite,longitude"`
}
