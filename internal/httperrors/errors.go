// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors shows failed API calls to the user. Transport failures
// are broken down by cause (timeout, DNS, refused, TLS) with troubleshooting
// hints; server rejections show the server's own message.
package httperrors

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	apperrors "petway/cli/internal/errors"
	"petway/cli/internal/logging"
)

// Report is what gets printed for one failure.
type Report struct {
	Title  string
	Detail string
	Hints  []string
}

// Present prints err for the action being performed ("loading pets") and
// returns it unchanged so commands can propagate it.
func Present(err error, action string) error {
	if err == nil {
		return nil
	}
	r := Describe(err, action)
	pterm.Error.Println(r.Title)
	if r.Detail != "" {
		pterm.Println(r.Detail)
	}
	if len(r.Hints) > 0 {
		pterm.Println()
		for _, h := range r.Hints {
			pterm.Println("  • " + h)
		}
		pterm.Println()
	}
	if apperrors.Is(err, apperrors.Transport) {
		pterm.Debug.Printf("Technical details: %s\n", shorten(logging.Mask(err.Error()), 100))
	}
	return err
}

// Describe classifies err without printing anything.
func Describe(err error, action string) Report {
	msg := apperrors.UserMessage(err)
	switch apperrors.KindOf(err) {
	case apperrors.Validation:
		return Report{Title: msg}
	case apperrors.Unauthenticated:
		return Report{Title: msg, Hints: []string{"Run `petway login` to sign in again"}}
	case apperrors.Storage:
		return Report{Title: "Cannot access the local session store while " + action, Detail: msg}
	case apperrors.Rejected:
		if isServerError(err) {
			return Report{
				Title:  "Server error while " + action,
				Detail: msg,
				Hints:  []string{"The problem is on the server side", "Please try again in a few minutes"},
			}
		}
		return Report{Title: msg}
	}

	switch {
	case isTimeoutError(err):
		return Report{
			Title:  "Connection timeout while " + action,
			Detail: "The server took too long to respond. This could mean:",
			Hints: []string{
				"Slow internet connection",
				"The server is waking up or under heavy load",
				"A firewall is blocking the connection",
			},
		}
	case isDNSError(err):
		return Report{
			Title:  "Cannot resolve server address while " + action,
			Detail: "Please check:",
			Hints:  []string{"Your internet connection is working", "The configured api_url is correct"},
		}
	case isConnectionRefusedError(err):
		return Report{
			Title:  "Connection refused while " + action,
			Detail: "The server is not accepting connections. This could mean:",
			Hints:  []string{"The service is temporarily down", "Wrong server address or port"},
		}
	case isSSLError(err):
		return Report{
			Title:  "Secure connection failed while " + action,
			Detail: "Cannot establish a secure HTTPS connection. Try:",
			Hints:  []string{"Check your system date and time", "Verify network proxy settings"},
		}
	}
	return Report{
		Title:  "Cannot reach PetWay while " + action,
		Detail: msg,
		Hints:  []string{"Your internet connection", "Firewall settings that might block HTTPS requests"},
	}
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") || strings.Contains(s, "deadline exceeded")
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isSSLError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "tls") ||
		strings.Contains(s, "x509") ||
		strings.Contains(s, "certificate") ||
		strings.Contains(s, "handshake")
}

func isServerError(err error) bool {
	var e *apperrors.E
	return errors.As(err, &e) && e.Status >= 500
}

func shorten(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
