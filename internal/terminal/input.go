package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// Prompter reads answers from a line-oriented input.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// NewPrompter reads from stdin and writes prompts to stdout.
func NewPrompter() *Prompter {
	return NewPrompterFrom(os.Stdin, os.Stdout, int(os.Stdin.Fd()))
}

// NewPrompterFrom is NewPrompter over arbitrary streams. fd is consulted for
// echo-less password input; pass -1 when r is not a terminal.
func NewPrompterFrom(r io.Reader, w io.Writer, fd int) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w, fd: fd}
}

// Line prints prompt and reads one trimmed line. A partial last line before
// EOF is returned as is.
func (p *Prompter) Line(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// LineOr is Line with a value used when the answer is empty.
func (p *Prompter) LineOr(prompt, fallback string) (string, error) {
	v, err := p.Line(prompt)
	if err != nil || v != "" {
		return v, err
	}
	return fallback, nil
}

// Secret reads a value without echo when the input is a terminal, and as a
// plain line otherwise.
func (p *Prompter) Secret(prompt string) (string, error) {
	if p.fd < 0 || !isTerminal(p.fd) {
		return p.Line(prompt)
	}
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	b, err := readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Confirm asks a yes/no question. y, yes, s, si and sí count as yes;
// anything else, including a read error, is no.
func (p *Prompter) Confirm(question string) bool {
	ans, err := p.Line(question + " [y/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(ans) {
	case "y", "yes", "s", "si", "sí":
		return true
	}
	return false
}

// Choose prints numbered options and returns the picked index. An empty
// answer returns -1 when allowNone is set.
func (p *Prompter) Choose(prompt string, options []string, allowNone bool) (int, error) {
	fmt.Fprintln(p.out, prompt)
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o)
	}
	for {
		ans, err := p.Line("Choice: ")
		if err != nil {
			return -1, err
		}
		if ans == "" && allowNone {
			return -1, nil
		}
		n, err := strconv.Atoi(ans)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(p.out, "Enter a number between 1 and %d\n", len(options))
	}
}
