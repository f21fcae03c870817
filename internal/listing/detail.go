// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package listing

import (
	"fmt"
	"strconv"

	"petway/cli/internal/domain"
)

// Texts shown in place of missing values on the detail view.
const (
	PhoneLoginPrompt   = "(log in to see the number)"
	NotSpecified       = "Not specified"
	ApproximateNote    = "The location shown may be approximate for privacy reasons."
	UnknownOwner       = "Unknown user"
	PlaceholderPhoto   = "/placeholder.jpg"
	googleMapsDirs     = "https://www.google.com/maps/dir/?api=1&destination="
	coordinatesFormatF = 'f'
)

// Detail is one listing as seen by a particular viewer.
type Detail struct {
	Pet      domain.Pet
	ViewerID string
	HasToken bool
}

// IsOwner reports whether the viewer's untrusted id matches the owner id.
// Anonymous viewers and listings without an owner are never owned.
func (d *Detail) IsOwner() bool {
	return d.ViewerID != "" && d.Pet.Owner.ID != "" && d.ViewerID == d.Pet.Owner.ID
}

// LoggedIn is true when a token is stored or a viewer id could be read.
func (d *Detail) LoggedIn() bool {
	return d.HasToken || d.ViewerID != ""
}

// CanManage reports whether the status and delete controls are offered.
func (d *Detail) CanManage() bool { return d.IsOwner() }

// PhoneVisible reports whether a phone number can be shown and copied.
func (d *Detail) PhoneVisible() bool { return d.Pet.Phone != "" }

// PhoneLine is the contact text. The server omits the phone for anonymous
// viewers, so a missing phone means "log in" for them and "not specified"
// for everyone else.
func (d *Detail) PhoneLine() string {
	switch {
	case d.Pet.Phone != "":
		return d.Pet.Phone
	case !d.LoggedIn():
		return PhoneLoginPrompt
	default:
		return NotSpecified
	}
}

// NeedsLoginForPhone is true when the login/register affordance applies.
func (d *Detail) NeedsLoginForPhone() bool {
	return d.Pet.Phone == "" && !d.LoggedIn()
}

// HasLocation reports whether the listing carries coordinates.
func (d *Detail) HasLocation() bool { return d.Pet.Location.Valid() }

// LocationNote is shown to non-owners next to the location.
func (d *Detail) LocationNote() string {
	if !d.HasLocation() || d.IsOwner() {
		return ""
	}
	return ApproximateNote
}

// CoordinatesText is "lat,lng", or "" without a location.
func (d *Detail) CoordinatesText() string {
	if !d.HasLocation() {
		return ""
	}
	return formatCoord(d.Pet.Location.Lat()) + "," + formatCoord(d.Pet.Location.Lng())
}

// MapsURL is the Google Maps directions link, or "" without a location.
func (d *Detail) MapsURL() string {
	if !d.HasLocation() {
		return ""
	}
	return googleMapsDirs + d.CoordinatesText()
}

// OwnerName falls back to a generic label.
func (d *Detail) OwnerName() string {
	if d.Pet.Owner.Name == "" {
		return UnknownOwner
	}
	return d.Pet.Owner.Name
}

// Field returns v, or NotSpecified when empty.
func Field(v string) string {
	if v == "" {
		return NotSpecified
	}
	return v
}

// Published is the creation date, or "" when the server did not send one.
func (d *Detail) Published() string {
	if d.Pet.CreatedAt.IsZero() {
		return ""
	}
	return d.Pet.CreatedAt.Local().Format("2006-01-02")
}

func (d *Detail) String() string {
	return fmt.Sprintf("%s (%s, %s) %s", d.Pet.Name, d.Pet.Kind, d.Pet.City, d.Pet.Status.Label())
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, coordinatesFormatF, -1, 64)
}
