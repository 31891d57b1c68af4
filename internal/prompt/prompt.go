// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt asks the user for values the command line left out.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoInput is returned when input ends before an answer is given.
var ErrNoInput = errors.New("no input available")

const maxAttempts = 3

// Prompter reads answers line by line from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter over in and out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line asks label and returns the trimmed answer. Empty answers are asked
// again, up to three times.
func (p *Prompter) Line(label string) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(p.out, "%s: ", label)
		line, err := p.in.ReadString('\n')
		answer := strings.TrimSpace(line)
		if answer != "" {
			return answer, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(p.out)
				return "", fmt.Errorf("%s: %w", label, ErrNoInput)
			}
			return "", fmt.Errorf("reading %s: %w", label, err)
		}
	}
	return "", fmt.Errorf("%s: %w", label, ErrNoInput)
}

// Parse asks label and converts the answer with parse, asking again while
// parse fails, up to three times.
func Parse[T any](p *Prompter, label string, parse func(string) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		answer, err := p.Line(label)
		if err != nil {
			return zero, err
		}
		v, err := parse(answer)
		if err == nil {
			return v, nil
		}
		lastErr = err
		fmt.Fprintf(p.out, "  %v\n", err)
	}
	return zero, lastErr
}

// Choose lists options numbered from 1 and returns the index of the one
// picked. A single option is returned without asking.
func (p *Prompter) Choose(label string, options []string) (int, error) {
	switch len(options) {
	case 0:
		return -1, fmt.Errorf("%s: nothing to choose from", label)
	case 1:
		return 0, nil
	}

	fmt.Fprintln(p.out, label)
	for i, o := range options {
		fmt.Fprintf(p.out, "  %2d) %s\n", i+1, o)
	}
	return Parse(p, "Enter number", func(s string) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > len(options) {
			return -1, fmt.Errorf("choose a number between 1 and %d", len(options))
		}
		return n - 1, nil
	})
}
