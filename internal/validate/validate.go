// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package validate checks user input before any request is sent and turns
// rule violations into short messages for the terminal.
package validate

import (
	stderrors "errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
	"sync"

	validator "github.com/go-playground/validator/v10"

	apperrors "petway/cli/internal/errors"
)

// MinPasswordLength applies to new passwords (reset and change).
const MinPasswordLength = 8

// SecurityQuestions are the only questions the server accepts.
var SecurityQuestions = []string{
	"¿Cuál es el nombre de tu primera mascota?",
	"¿En qué ciudad naciste?",
	"¿Cuál es el nombre de tu madre?",
	"¿Cuál es tu comida favorita?",
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s looks like an email address.
func Email(s string) bool { return emailRe.MatchString(s) }

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return strings.ToLower(f.Name)
		})
		mustRegister(v, "petwayemail", func(fl validator.FieldLevel) bool {
			return Email(fl.Field().String())
		})
		mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		mustRegister(v, "finite", func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		})
		mustRegister(v, "secquestion", func(fl validator.FieldLevel) bool {
			return IsSecurityQuestion(fl.Field().String())
		})
		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// IsSecurityQuestion reports whether q is one of SecurityQuestions.
func IsSecurityQuestion(q string) bool {
	for _, s := range SecurityQuestions {
		if s == q {
			return true
		}
	}
	return false
}

// Struct validates a form and returns the first violation as a Validation
// error, or nil.
func Struct(form any) error {
	err := get().Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.Wrap(apperrors.Validation, message(verrs[0]), err)
	}
	return apperrors.Wrap(apperrors.Validation, "invalid input", err)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "petwayemail":
		return "please enter a valid email address"
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "required_with":
		return "an answer is required when changing the security question"
	case "finite", "latitude", "longitude":
		return "a valid location (latitude and longitude) is required"
	case "secquestion":
		return "choose one of the listed security questions"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
