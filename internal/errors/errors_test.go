package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSurvivesWrapping(t *testing.T) {
	base := New(Rejected, "Mascota no encontrada")
	wrapped := fmt.Errorf("show pet: %w", base)

	assert.Equal(t, Rejected, KindOf(wrapped))
	assert.True(t, Is(wrapped, Rejected))
	assert.False(t, Is(wrapped, Transport))
	assert.Equal(t, "Mascota no encontrada", UserMessage(wrapped))
}

func TestUnwrapReachesCause(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := Wrap(Transport, "no response received from server", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "transport: no response received from server: dial tcp: connection refused", err.Error())
}

func TestUserMessageFallsBackToErrorText(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "boom", UserMessage(stderrors.New("boom")))
	assert.Equal(t, Kind(""), KindOf(stderrors.New("boom")))
	assert.False(t, Is(nil, Validation))
}
