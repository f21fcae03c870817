package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prompter(in string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompterFrom(strings.NewReader(in), &out, -1), &out
}

func TestLine(t *testing.T) {
	p, out := prompter(" Rex \nlast")
	got, err := p.Line("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "Rex", got)
	assert.Equal(t, "Name: ", out.String())

	got, err = p.Line("City: ")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = p.Line("More: ")
	assert.Error(t, err)
}

func TestLineOr(t *testing.T) {
	p, _ := prompter("\n")
	got, err := p.LineOr("Radius: ", "5000")
	require.NoError(t, err)
	assert.Equal(t, "5000", got)
}

func TestSecretWithoutTerminalReadsLine(t *testing.T) {
	p, _ := prompter("hunter22\n")
	got, err := p.Secret("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "hunter22", got)
}

func TestSecretUsesReadPassword(t *testing.T) {
	oldRead, oldTerm := readPassword, isTerminal
	defer func() { readPassword, isTerminal = oldRead, oldTerm }()
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }

	var out bytes.Buffer
	p := NewPrompterFrom(strings.NewReader(""), &out, 0)
	got, err := p.Secret("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = p.Secret("Password: ")
	assert.Error(t, err)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"YES", true},
		{"s", true},
		{"si", true},
		{"Sí", true},
		{"no", false},
		{"", false},
		{"sure", false},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			p, _ := prompter(tt.answer + "\n")
			assert.Equal(t, tt.want, p.Confirm("Delete?"))
		})
	}

	p, _ := prompter("")
	assert.False(t, p.Confirm("Delete?"), "a read error is no")
}

func TestChoose(t *testing.T) {
	p, out := prompter("9\nx\n2\n\n")
	i, err := p.Choose("Pick:", []string{"a", "b"}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Contains(t, out.String(), "Enter a number between 1 and 2")

	i, err = p.Choose("Pick:", []string{"a", "b"}, true)
	require.NoError(t, err)
	assert.Equal(t, -1, i)
}

func TestLinesUsed(t *testing.T) {
	assert.Equal(t, 2, LinesUsed(0, 80))
	assert.Equal(t, 2, LinesUsed(80, 80))
	assert.Equal(t, 3, LinesUsed(81, 80))
	assert.Equal(t, 3, LinesUsed(100, 0))
}

func TestClearLines(t *testing.T) {
	var buf bytes.Buffer
	clearLines(&buf, 2)
	assert.Equal(t, "\r\x1b[2K\x1b[1A\r\x1b[2K", buf.String())
}
