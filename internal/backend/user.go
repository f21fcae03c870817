// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"petway/cli/internal/domain"
	apperrors "petway/cli/internal/errors"
)

const meCacheTTL = 10 * time.Minute

// GetMe calls GET /usuarios/me. Results are cached in memory for ten minutes.
// When the server cannot be reached a cached profile is returned instead;
// auth failures and rejections are always reported.
func (h *HTTP) GetMe(ctx context.Context) (*domain.UserProfile, error) {
	h.meMu.Lock()
	cached, at := h.meCache, h.meCacheTime
	h.meMu.Unlock()
	if cached != nil && time.Since(at) < meCacheTTL {
		return cached, nil
	}

	resp, err := h.do(h.request(ctx), http.MethodGet, "/usuarios/me")
	if err != nil {
		if cached != nil && apperrors.Is(err, apperrors.Transport) {
			return cached, nil
		}
		return nil, err
	}
	u, err := decodeProfile(resp.Body())
	if err != nil {
		return nil, err
	}
	h.rememberMe(u)
	return u, nil
}

// UpdateMe calls PUT /usuarios/me with a multipart form holding the new name.
func (h *HTTP) UpdateMe(ctx context.Context, name string) (*domain.UserProfile, error) {
	req := h.request(ctx).SetMultipartFormData(map[string]string{"nombre": name})
	resp, err := h.do(req, http.MethodPut, "/usuarios/me")
	if err != nil {
		return nil, err
	}
	u, err := decodeProfile(resp.Body())
	if err != nil {
		return nil, err
	}
	h.rememberMe(u)
	return u, nil
}

func (h *HTTP) rememberMe(u *domain.UserProfile) {
	h.meMu.Lock()
	defer h.meMu.Unlock()
	h.meCache = u
	h.meCacheTime = time.Now()
}

func (h *HTTP) forgetMe() {
	h.meMu.Lock()
	defer h.meMu.Unlock()
	h.meCache = nil
	h.meCacheTime = time.Time{}
}

// decodeProfile accepts the profile either bare or wrapped in "usuario".
func decodeProfile(body []byte) (*domain.UserProfile, error) {
	var wrapped struct {
		User *domain.UserProfile `json:"usuario"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User, nil
	}
	var u domain.UserProfile
	if err := decode(body, &u); err != nil {
		return nil, err
	}
	if u.ID == "" && u.Email == "" {
		return nil, apperrors.New(apperrors.Rejected, BadResponseMessage)
	}
	return &u, nil
}
