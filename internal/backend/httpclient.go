// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"petway/cli/internal/domain"
	apperrors "petway/cli/internal/errors"
	"petway/cli/internal/logging"
	"petway/cli/internal/route"
)

// User-facing texts produced by the gateway itself.
const (
	NoResponseMessage     = "no response received from server"
	BadResponseMessage    = "unexpected response from server"
	SessionExpiredMessage = "Your session has expired or is no longer valid. Please log in again."
)

// TokenSource supplies the bearer token for each request. *session.Store
// implements it.
type TokenSource interface {
	Token() string
}

// Invalidator ends the local session after the server refused the token.
type Invalidator interface {
	Invalidate()
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Notify(message string)
}

// Navigator is the part of the router the gateway drives.
type Navigator interface {
	At(v route.View) bool
	Navigate(v route.View)
}

// Options configures the gateway. Only BaseURL is required.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Tokens    TokenSource
	Session   Invalidator
	Notifier  Notifier
	Router    Navigator
	Logger    *zap.SugaredLogger
	UserAgent string
}

// HTTP implements API over the PetWay REST endpoints.
// The signed-in profile is cached in memory so repeated lookups within one
// run do not hit the server.
type HTTP struct {
	// baseURL is the API root, e.g. "https://petway-backend.onrender.com"
	baseURL string
	client  *resty.Client

	tokens   TokenSource
	session  Invalidator
	notifier Notifier
	router   Navigator
	log      *zap.SugaredLogger

	// expireMu serializes the forced-logout side effects so concurrent auth
	// failures notify at most once.
	expireMu sync.Mutex

	meMu        sync.Mutex
	meCache     *domain.UserProfile
	meCacheTime time.Time
}

// newHTTP builds the resty client with the bearer and request-id hook.
func newHTTP(opts Options) *HTTP {
	h := &HTTP{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		tokens:   opts.Tokens,
		session:  opts.Session,
		notifier: opts.Notifier,
		router:   opts.Router,
		log:      logging.OrNop(opts.Logger),
	}

	c := resty.New().
		SetBaseURL(h.baseURL+"/api").
		SetHeader("Accept", "application/json").
		SetLogger(h.log)
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}
	c.OnBeforeRequest(h.beforeRequest)
	c.OnAfterResponse(h.afterResponse)
	h.client = c
	return h
}

// BaseURL returns the API root without the /api suffix.
func (h *HTTP) BaseURL() string { return h.baseURL }

func (h *HTTP) beforeRequest(_ *resty.Client, req *resty.Request) error {
	if h.tokens != nil {
		if tok := h.tokens.Token(); tok != "" {
			req.SetHeader("Authorization", bearer(tok))
		}
	}
	req.SetHeader("X-Request-ID", uuid.NewString())
	return nil
}

func (h *HTTP) afterResponse(_ *resty.Client, resp *resty.Response) error {
	h.log.Debugw("api call",
		"method", resp.Request.Method,
		"url", logging.Mask(resp.Request.URL),
		"status", resp.StatusCode(),
		"request_id", resp.Request.Header.Get("X-Request-ID"),
		"authenticated", parseBearerToken(resp.Request.Header.Get("Authorization")) != "",
		"duration", resp.Time(),
	)
	return nil
}

func (h *HTTP) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}

// do executes req and classifies the outcome. Callers get either a 2xx
// response or a typed error; never both.
func (h *HTTP) do(req *resty.Request, method, path string) (*resty.Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil && (resp == nil || resp.RawResponse == nil) {
		h.log.Debugw("api call failed without response", "method", method, "path", path, "error", err)
		return nil, apperrors.Wrap(apperrors.Transport, NoResponseMessage, err)
	}
	if resp.IsError() {
		return nil, h.fail(resp)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Rejected, BadResponseMessage, err)
	}
	return resp, nil
}

// call sends an optional JSON body and decodes the reply into out.
func (h *HTTP) call(ctx context.Context, method, path string, body, out any) error {
	req := h.request(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := h.do(req, method, path)
	if err != nil {
		return err
	}
	return decode(resp.Body(), out)
}

// fail turns an error status into a typed error. Authentication failures
// also end the session before returning.
func (h *HTTP) fail(resp *resty.Response) error {
	status := resp.StatusCode()
	msg := serverMessage(resp.Body())
	text := msg
	if text == "" {
		text = fmt.Sprintf("Error %d", status)
	}
	h.log.Debugw("api error", "status", status, "msg", logging.Mask(text))

	if isAuthFailure(status, msg) {
		h.expireSession(isQuiet(resp.Request.Context()))
		return &apperrors.E{Kind: apperrors.Unauthenticated, Message: text, Status: status}
	}
	return &apperrors.E{Kind: apperrors.Rejected, Message: text, Status: status}
}

// expireSession clears the session, then tells the user and moves to the
// login view. When the login view is already showing, or the request was
// marked quiet, only the clearing happens.
func (h *HTTP) expireSession(quiet bool) {
	h.expireMu.Lock()
	defer h.expireMu.Unlock()

	h.forgetMe()
	if h.session != nil {
		h.session.Invalidate()
	}
	if quiet {
		h.log.Debug("auth failure on quiet request; skipping redirect")
		return
	}
	if h.router != nil && h.router.At(route.Login) {
		h.log.Debug("auth failure on login view; skipping redirect")
		return
	}
	if h.notifier != nil {
		h.notifier.Notify(SessionExpiredMessage)
	}
	if h.router != nil {
		h.router.Navigate(route.Login)
	}
}

type quietKey struct{}

// quiet marks ctx so an auth failure ends the session without notifying or
// navigating. Used by calls that end the session anyway.
func quiet(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietKey{}, true)
}

func isQuiet(ctx context.Context) bool {
	q, _ := ctx.Value(quietKey{}).(bool)
	return q
}

// serverMessage extracts the "msg" field of an error body, if any.
func serverMessage(body []byte) string {
	var out struct {
		Msg any `json:"msg"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.Msg == nil {
		return ""
	}
	if s, ok := out.Msg.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(out.Msg)
}

func decode(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Wrap(apperrors.Rejected, BadResponseMessage, err)
	}
	return nil
}
