// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"petway/cli/internal/domain"
	apperrors "petway/cli/internal/errors"
)

// ListPets calls GET /mascotas.
func (h *HTTP) ListPets(ctx context.Context) ([]domain.Pet, error) {
	var out []domain.Pet
	if err := h.call(ctx, http.MethodGet, "/mascotas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMyPets calls GET /mascotas/mias with the session token.
func (h *HTTP) ListMyPets(ctx context.Context) ([]domain.Pet, error) {
	var out []domain.Pet
	if err := h.call(ctx, http.MethodGet, "/mascotas/mias", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPet calls GET /mascotas/{id}.
func (h *HTTP) GetPet(ctx context.Context, id string) (*domain.Pet, error) {
	resp, err := h.do(h.request(ctx).SetPathParam("id", id), http.MethodGet, "/mascotas/{id}")
	if err != nil {
		return nil, err
	}
	return decodePet(resp.Body())
}

// NearPets calls GET /mascotas/near. The server does the distance filtering;
// the result is returned exactly as received.
func (h *HTTP) NearPets(ctx context.Context, lat, lng float64, radius int) ([]domain.Pet, error) {
	req := h.request(ctx).SetQueryParams(map[string]string{
		"lat":    strconv.FormatFloat(lat, 'f', -1, 64),
		"lng":    strconv.FormatFloat(lng, 'f', -1, 64),
		"radius": strconv.Itoa(radius),
	})
	resp, err := h.do(req, http.MethodGet, "/mascotas/near")
	if err != nil {
		return nil, err
	}
	var out []domain.Pet
	if err := decode(resp.Body(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePet calls POST /mascotas as multipart/form-data. The photo part is
// named "foto" and is omitted when photo is nil.
func (h *HTTP) CreatePet(ctx context.Context, p NewPet, photo *Photo) (*domain.Pet, error) {
	req := h.request(ctx).SetMultipartFormData(map[string]string{
		"nombre":      p.Name,
		"tipo":        p.Kind,
		"raza":        p.Breed,
		"edad":        p.Age,
		"descripcion": p.Description,
		"ciudad":      p.City,
		"telefono":    p.Phone,
		"lat":         strconv.FormatFloat(p.Lat, 'f', -1, 64),
		"lng":         strconv.FormatFloat(p.Lng, 'f', -1, 64),
	})
	if photo != nil && photo.Reader != nil {
		req.SetFileReader("foto", photo.Filename, photo.Reader)
	}
	resp, err := h.do(req, http.MethodPost, "/mascotas")
	if err != nil {
		return nil, err
	}
	return decodePet(resp.Body())
}

// SetPetStatus calls PATCH /mascotas/{id}/estado.
func (h *HTTP) SetPetStatus(ctx context.Context, id string, status domain.Status) (string, error) {
	req := h.request(ctx).
		SetPathParam("id", id).
		SetBody(map[string]string{"estado": string(status)})
	resp, err := h.do(req, http.MethodPatch, "/mascotas/{id}/estado")
	if err != nil {
		return "", err
	}
	return serverMessage(resp.Body()), nil
}

// DeletePet calls DELETE /mascotas/{id}.
func (h *HTTP) DeletePet(ctx context.Context, id string) (string, error) {
	resp, err := h.do(h.request(ctx).SetPathParam("id", id), http.MethodDelete, "/mascotas/{id}")
	if err != nil {
		return "", err
	}
	return serverMessage(resp.Body()), nil
}

// decodePet accepts the listing either bare or wrapped in "mascota".
func decodePet(body []byte) (*domain.Pet, error) {
	var wrapped struct {
		Pet *domain.Pet `json:"mascota"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Pet != nil {
		return wrapped.Pet, nil
	}
	var p domain.Pet
	if err := decode(body, &p); err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, apperrors.New(apperrors.Rejected, BadResponseMessage)
	}
	return &p, nil
}
