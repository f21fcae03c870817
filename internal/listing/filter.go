// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package listing

import (
	"strings"

	"petway/cli/internal/domain"
)

// Filter keeps the pets whose "name kind city status" text contains query,
// case-insensitively. An empty query keeps everything. Order is preserved.
func Filter(pets []domain.Pet, query string) []domain.Pet {
	q := strings.ToLower(query)
	if q == "" {
		return pets
	}
	out := make([]domain.Pet, 0, len(pets))
	for _, p := range pets {
		if strings.Contains(searchText(p), q) {
			out = append(out, p)
		}
	}
	return out
}

func searchText(p domain.Pet) string {
	return strings.ToLower(p.Name + " " + p.Kind + " " + p.City + " " + string(p.Status))
}

// PhotoURL resolves a listing's photo path against the API root. Absolute
// URLs pass through; an empty path yields the placeholder.
func PhotoURL(apiRoot, fotoURL string) string {
	switch {
	case fotoURL == "":
		return PlaceholderPhoto
	case strings.HasPrefix(fotoURL, "http"):
		return fotoURL
	default:
		return strings.TrimRight(apiRoot, "/") + fotoURL
	}
}
