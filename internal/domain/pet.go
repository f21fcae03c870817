// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Status is the lifecycle state of a listing.
type Status string

const (
	StatusLost  Status = "perdido"
	StatusFound Status = "encontrado"
)

// Toggle returns the opposite status. Anything that is not "perdido" toggles
// back to lost.
func (s Status) Toggle() Status {
	if s == StatusLost {
		return StatusFound
	}
	return StatusLost
}

// Label is the human text shown next to a listing.
func (s Status) Label() string {
	switch s {
	case StatusLost:
		return "lost"
	case StatusFound:
		return "found"
	default:
		return string(s)
	}
}

// Pet is one listing as returned by /mascotas endpoints. Phone is empty when
// the server redacts it for anonymous viewers.
type Pet struct {
	ID          string    `json:"_id"`
	Name        string    `json:"nombre"`
	Kind        string    `json:"tipo"`
	Breed       string    `json:"raza,omitempty"`
	Age         Age       `json:"edad,omitempty"`
	Description string    `json:"descripcion,omitempty"`
	City        string    `json:"ciudad"`
	Phone       string    `json:"telefono,omitempty"`
	PhotoURL    string    `json:"fotoUrl,omitempty"`
	Status      Status    `json:"estado"`
	Owner       OwnerRef  `json:"usuario"`
	Location    *Location `json:"ubicacion,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Age is free text; the API sends either a number or a string.
type Age string

func (a *Age) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Age(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Age(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// OwnerRef identifies the listing's owner. Populated listings carry an object,
// unpopulated ones a bare id string.
type OwnerRef struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"nombre,omitempty"`
}

func (o *OwnerRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*o = OwnerRef{}
		return nil
	case b[0] == '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*o = OwnerRef{ID: id}
		return nil
	}
	type plain OwnerRef
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*o = OwnerRef(aux.plain)
	if o.ID == "" {
		o.ID = aux.AltID
	}
	return nil
}

// Location is a GeoJSON point. Coordinates are [lng, lat].
type Location struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates"`
}

// Valid reports whether both coordinates are present.
func (l *Location) Valid() bool {
	return l != nil && len(l.Coordinates) >= 2
}

func (l *Location) Lat() float64 {
	if !l.Valid() {
		return 0
	}
	return l.Coordinates[1]
}

func (l *Location) Lng() float64 {
	if !l.Valid() {
		return 0
	}
	return l.Coordinates[0]
}
