package view

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/forge-cloud/archplan/pkg/services/catalog"
)

// Prompter reads wizard answers from an interactive terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask reads one line, trimmed.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskDefault reads one line, substituting def when the answer is empty.
func (p *Prompter) AskDefault(label, def string) (string, error) {
	answer, err := p.Ask(fmt.Sprintf("%s [%s]", label, def))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question; empty input means no.
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Ask(label + " (y/N)")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// Choose presents numbered options and returns the chosen value. An empty
// answer returns the empty string so callers can treat the field as skipped.
func (p *Prompter) Choose(label string, opts []catalog.Option) (string, error) {
	fmt.Fprintf(p.out, "%s:\n", label)
	for i, o := range opts {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o.Label)
	}

	for {
		answer, err := p.Ask("Select")
		if err != nil {
			return "", err
		}
		if answer == "" {
			return "", nil
		}

		idx, err := strconv.Atoi(answer)
		if err == nil && idx >= 1 && idx <= len(opts) {
			return opts[idx-1].Value, nil
		}
		if catalog.Contains(opts, answer) {
			return answer, nil
		}
		fmt.Fprintf(p.out, "Pick a number between 1 and %d.\n", len(opts))
	}
}

// ChooseMany presents numbered options and returns the values for a
// comma-separated selection. Empty input selects nothing.
func (p *Prompter) ChooseMany(label string, opts []catalog.Option) ([]string, error) {
	fmt.Fprintf(p.out, "%s:\n", label)
	for i, o := range opts {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o.Label)
	}

	answer, err := p.Ask("Select (comma-separated, empty for none)")
	if err != nil {
		return nil, err
	}
	if answer == "" {
		return nil, nil
	}

	var values []string
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil && idx >= 1 && idx <= len(opts) {
			values = append(values, opts[idx-1].Value)
			continue
		}
		if catalog.Contains(opts, part) {
			values = append(values, part)
		}
	}
	return values, nil
}

// Say writes a formatted line to the terminal.
func (p *Prompter) Say(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}
