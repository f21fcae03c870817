// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package claims reads the payload of a session token without verifying its
// signature. The result is untrusted: it only decides presentation, such as
// whether to offer owner controls on a listing. The server authorizes every
// request on its own.
package claims

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"petway/cli/internal/logging"
)

// Claims is the subset of the token payload petway looks at.
type Claims struct {
	ID        string
	Email     string
	ExpiresAt *time.Time
	Raw       map[string]any
}

// Reader decodes token payloads and logs the ones it cannot read.
type Reader struct {
	log *zap.SugaredLogger
}

// NewReader returns a Reader logging to log. A nil logger discards.
func NewReader(log *zap.SugaredLogger) *Reader {
	return &Reader{log: logging.OrNop(log)}
}

// DecodeUntrusted reads the middle segment of a three-segment token. The
// header and signature are not looked at. The payload may use either base64
// alphabet, with or without padding. Malformed input yields false and one
// warning; an empty token yields false silently.
func (r *Reader) DecodeUntrusted(token string) (Claims, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, false
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		r.log.Warnw("token claims unreadable", "error", fmt.Sprintf("token has %d segments", len(parts)))
		return Claims{}, false
	}
	seg := strings.NewReplacer("-", "+", "_", "/").Replace(parts[1])
	raw, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(seg, "="))
	if err != nil {
		r.log.Warnw("token claims unreadable", "error", err)
		return Claims{}, false
	}
	mc := jwt.MapClaims{}
	if err := json.Unmarshal(raw, &mc); err != nil {
		r.log.Warnw("token claims unreadable", "error", err)
		return Claims{}, false
	}

	c := Claims{Raw: mc, ID: stringClaim(mc, "id")}
	if c.ID == "" {
		c.ID, _ = mc.GetSubject()
	}
	c.Email = stringClaim(mc, "email")
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		c.ExpiresAt = &t
	}
	return c, true
}

// ViewerID returns the untrusted user id carried by token, or "" when it
// cannot be read.
func (r *Reader) ViewerID(token string) string {
	c, ok := r.DecodeUntrusted(token)
	if !ok {
		return ""
	}
	return c.ID
}

func stringClaim(mc jwt.MapClaims, key string) string {
	switch v := mc[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
