package httperrors

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "petway/cli/internal/errors"
)

func TestDescribe(t *testing.T) {
	transport := func(cause error) error {
		return apperrors.Wrap(apperrors.Transport, "no response received from server", cause)
	}
	tests := []struct {
		name  string
		err   error
		title string
	}{
		{"timeout", transport(context.DeadlineExceeded), "Connection timeout while loading pets"},
		{"dns", transport(&net.DNSError{Err: "no such host", Name: "petway.invalid"}), "Cannot resolve server address while loading pets"},
		{"refused", transport(errors.New("dial tcp 127.0.0.1:1: connect: connection refused")), "Connection refused while loading pets"},
		{"tls", transport(errors.New("x509: certificate signed by unknown authority")), "Secure connection failed while loading pets"},
		{"other transport", transport(errors.New("EOF")), "Cannot reach PetWay while loading pets"},
		{"server 5xx", &apperrors.E{Kind: apperrors.Rejected, Message: "Error 503", Status: 503}, "Server error while loading pets"},
		{"rejected", &apperrors.E{Kind: apperrors.Rejected, Message: "Mascota no encontrada", Status: 404}, "Mascota no encontrada"},
		{"validation", apperrors.New(apperrors.Validation, "city is required"), "city is required"},
		{"unauthenticated", apperrors.New(apperrors.Unauthenticated, "Token expirado"), "Token expirado"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.title, Describe(tt.err, "loading pets").Title)
		})
	}
}

func TestPresentReturnsSameError(t *testing.T) {
	err := apperrors.New(apperrors.Validation, "name is required")
	assert.Same(t, err, Present(err, "publishing").(*apperrors.E))
	assert.NoError(t, Present(nil, "publishing"))
}

func TestExtractHostFromURL(t *testing.T) {
	assert.Equal(t, "petway-backend.onrender.com", ExtractHostFromURL("https://petway-backend.onrender.com/api"))
	assert.Equal(t, "server", ExtractHostFromURL("::"))
}
