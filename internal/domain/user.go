// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package domain holds the PetWay data shapes shared by the client packages:
// the cached user profile and pet listings as the API returns them.
package domain

import "encoding/json"

// UserProfile is the non-authoritative copy of the signed-in user kept next
// to the session token. The server is the source of truth.
type UserProfile struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"nombre,omitempty"`
	Email    string `json:"email,omitempty"`
	Verified *bool  `json:"verificado,omitempty"`
}

// UnmarshalJSON accepts the id and verification flag under the spellings the
// API has used over time.
func (u *UserProfile) UnmarshalJSON(b []byte) error {
	type plain UserProfile
	var aux struct {
		plain
		AltID       string `json:"id"`
		VerifiedEN  *bool  `json:"verified"`
		VerifiedAlt *bool  `json:"isVerified"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*u = UserProfile(aux.plain)
	if u.ID == "" {
		u.ID = aux.AltID
	}
	if u.Verified == nil {
		u.Verified = aux.VerifiedEN
	}
	if u.Verified == nil {
		u.Verified = aux.VerifiedAlt
	}
	return nil
}

// NeedsVerification reports whether the server explicitly marked the account
// as unverified. A missing flag counts as verified.
func (u *UserProfile) NeedsVerification() bool {
	return u != nil && u.Verified != nil && !*u.Verified
}

// DisplayName picks the friendliest identifier available.
func (u *UserProfile) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	default:
		return u.ID
	}
}
