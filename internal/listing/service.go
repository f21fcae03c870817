// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package listing implements the pet listing flows: browsing and searching,
// proximity search, publishing with a photo, and the owner-only status
// toggle and delete. Ownership is decided from the untrusted token claims and
// only gates what the client offers; the server enforces it again.
package listing

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"petway/cli/internal/backend"
	"petway/cli/internal/claims"
	"petway/cli/internal/domain"
	apperrors "petway/cli/internal/errors"
	"petway/cli/internal/logging"
	"petway/cli/internal/session"
	"petway/cli/internal/validate"
)

// DefaultRadius is the proximity search radius in meters.
const DefaultRadius = 5000

// Confirm asks the user a yes/no question.
type Confirm func(question string) bool

// DeleteQuestion is asked before a listing is deleted.
const DeleteQuestion = "Delete this pet? This cannot be undone."

// Service runs the listing flows.
type Service struct {
	be     backend.API
	store  *session.Store
	apiURL string
	claims *claims.Reader
	log    *zap.SugaredLogger
}

// NewService wires the flows. apiURL is the API root used to resolve photos.
func NewService(be backend.API, store *session.Store, apiURL string, log *zap.SugaredLogger) *Service {
	log = logging.OrNop(log)
	return &Service{be: be, store: store, apiURL: apiURL, claims: claims.NewReader(log.Named("claims")), log: log}
}

// All lists every pet.
func (s *Service) All(ctx context.Context) ([]domain.Pet, error) {
	return s.be.ListPets(ctx)
}

// Search lists every pet and filters them locally.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Pet, error) {
	pets, err := s.be.ListPets(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(pets, query), nil
}

// Mine lists the signed-in user's pets.
func (s *Service) Mine(ctx context.Context) ([]domain.Pet, error) {
	if s.store.Token() == "" {
		return nil, apperrors.New(apperrors.Unauthenticated, "you must log in to see your pets")
	}
	return s.be.ListMyPets(ctx)
}

// Near lists pets around a point. radius <= 0 means DefaultRadius. The
// server's result is returned unchanged.
func (s *Service) Near(ctx context.Context, lat, lng float64, radius int) ([]domain.Pet, error) {
	if err := validate.Struct(struct {
		Lat *float64 `label:"latitude" validate:"required,finite,latitude"`
		Lng *float64 `label:"longitude" validate:"required,finite,longitude"`
	}{&lat, &lng}); err != nil {
		return nil, err
	}
	if radius <= 0 {
		radius = DefaultRadius
	}
	return s.be.NearPets(ctx, lat, lng, radius)
}

// Get loads one listing and pairs it with the current viewer.
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.New(apperrors.Validation, "pet id is required")
	}
	p, err := s.be.GetPet(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Describe(*p), nil
}

// Describe builds the viewer-specific view of p.
func (s *Service) Describe(p domain.Pet) *Detail {
	tok := s.store.Token()
	return &Detail{Pet: p, ViewerID: s.claims.ViewerID(tok), HasToken: tok != ""}
}

// Photo resolves the listing's photo URL.
func (s *Service) Photo(p domain.Pet) string {
	return PhotoURL(s.apiURL, p.PhotoURL)
}

// Publish validates the form and creates the listing. A token must be
// present before anything is sent.
func (s *Service) Publish(ctx context.Context, form validate.PetForm, photo *backend.Photo) (*domain.Pet, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Kind = strings.TrimSpace(form.Kind)
	form.City = strings.TrimSpace(form.City)
	if err := validate.Struct(form); err != nil {
		return nil, err
	}
	if s.store.Token() == "" {
		return nil, apperrors.New(apperrors.Unauthenticated, "you must log in to publish a pet")
	}
	p, err := s.be.CreatePet(ctx, backend.NewPet{
		Name:        form.Name,
		Kind:        form.Kind,
		Breed:       strings.TrimSpace(form.Breed),
		Age:         strings.TrimSpace(form.Age),
		Description: strings.TrimSpace(form.Description),
		City:        form.City,
		Phone:       strings.TrimSpace(form.Phone),
		Lat:         *form.Lat,
		Lng:         *form.Lng,
	}, photo)
	if err != nil {
		return nil, err
	}
	s.log.Infow("pet published", "id", p.ID)
	return p, nil
}

// ToggleStatus flips perdido/encontrado for an owned listing and updates d
// in place on success.
func (s *Service) ToggleStatus(ctx context.Context, d *Detail) (string, error) {
	if err := s.ownerCheck(d, "change the status"); err != nil {
		return "", err
	}
	next := d.Pet.Status.Toggle()
	msg, err := s.be.SetPetStatus(ctx, d.Pet.ID, next)
	if err != nil {
		return "", err
	}
	d.Pet.Status = next
	return msg, nil
}

// Delete removes an owned listing once confirm agrees. It reports false
// without error when the user declines.
func (s *Service) Delete(ctx context.Context, d *Detail, confirm Confirm) (bool, string, error) {
	if confirm == nil || !confirm(DeleteQuestion) {
		return false, "", nil
	}
	if err := s.ownerCheck(d, "delete"); err != nil {
		return false, "", err
	}
	msg, err := s.be.DeletePet(ctx, d.Pet.ID)
	if err != nil {
		return false, "", err
	}
	return true, msg, nil
}

func (s *Service) ownerCheck(d *Detail, action string) error {
	if s.store.Token() == "" {
		return apperrors.Newf(apperrors.Unauthenticated, "you must log in to %s", action)
	}
	if !d.IsOwner() {
		return apperrors.Newf(apperrors.Validation, "only the owner can %s", action)
	}
	return nil
}
