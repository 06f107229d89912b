// Package prompt asks the user yes/no questions before destructive steps.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin is a terminal.
// It is false for piped or redirected input.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Prompter reads answers from reader and writes questions to writer.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewPrompter creates a Prompter.
// Use os.Stdin and os.Stdout for normal operation, or buffers for testing.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// Confirm asks question and returns true only for "y" or "yes".
// End of input counts as "no"; any other answer is rejected for safety.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.writer, "%s [y/N]: ", question)

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("error reading input: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(p.writer)
		return false, nil
	}

	input := strings.TrimSpace(strings.ToLower(line))
	switch input {
	case "y", "yes":
		return true, nil
	case "", "n", "no":
		return false, nil
	default:
		fmt.Fprintf(p.writer, "Invalid input '%s', treating as no.\n", input)
		return false, nil
	}
}

// Gate answers a confirmation either from a preset flag or by asking.
type Gate struct {
	// Preset, when true, answers yes without asking.
	Preset bool
	// Interactive allows asking the prompter; without it the answer is no.
	Interactive bool
	Prompter    *Prompter
}

// Confirm resolves the gate for question.
func (g Gate) Confirm(question string) (bool, error) {
	if g.Preset {
		return true, nil
	}
	if !g.Interactive || g.Prompter == nil {
		return false, nil
	}
	return g.Prompter.Confirm(question)
}
