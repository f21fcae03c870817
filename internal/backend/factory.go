// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

// New creates the HTTP gateway. The concrete type is returned so callers can
// reach BaseURL; it satisfies API.
func New(opts Options) *HTTP {
	return newHTTP(opts)
}

var _ API = (*HTTP)(nil)
