package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/opendatateam/ucli/internal/lib"
)

// Choice is one entry of a prompted list
type Choice struct {
	Key   string
	Label string
}

// Option maps a typed value to its displayed label
type Option[T any] struct {
	Label string
	Value T
}

// Prompter reads operator answers line by line
type Prompter struct {
	in  *bufio.Reader
	out *Printer
}

// NewPrompter creates a prompter reading from in and writing prompts through out
func NewPrompter(in io.Reader, out *Printer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Choose renders the choices and returns the selected key.
// An empty answer selects the first choice; an unknown key repeats the prompt.
func (p *Prompter) Choose(title string, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", lib.ErrInvalidInput(fmt.Sprintf("nothing to choose for %q", title), nil)
	}

	lines := make([]string, 0, len(choices))
	keys := make([]string, 0, len(choices))
	for _, c := range choices {
		lines = append(lines, fmt.Sprintf("%s: %s", c.Key, c.Label))
		keys = append(keys, c.Key)
	}
	p.out.LabelArrow(title, "\n"+strings.Join(lines, "\n"))

	for {
		fmt.Fprintf(p.out.Writer(), "Your choice ? (%s) [%s]: ", strings.Join(keys, ", "), keys[0])
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if answer == "" {
			return keys[0], nil
		}
		for _, key := range keys {
			if answer == key {
				return key, nil
			}
		}
		fmt.Fprintf(p.out.Writer(), "Error: invalid choice: %s. (choose from %s)\n", answer, strings.Join(keys, ", "))
	}
}

// Select presents typed options numbered from 1 and returns the chosen value
func Select[T any](p *Prompter, title string, options []Option[T]) (T, error) {
	var zero T

	choices := make([]Choice, len(options))
	for i, opt := range options {
		choices[i] = Choice{Key: strconv.Itoa(i + 1), Label: opt.Label}
	}

	key, err := p.Choose(title, choices)
	if err != nil {
		return zero, err
	}

	index, err := strconv.Atoi(key)
	if err != nil || index < 1 || index > len(options) {
		return zero, lib.ErrInvalidInput(fmt.Sprintf("unexpected choice %q", key), err)
	}
	return options[index-1].Value, nil
}

// Text asks for a non-empty free-text answer
func (p *Prompter) Text(prompt string) (string, error) {
	for {
		fmt.Fprintf(p.out.Writer(), "%s: ", prompt)
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
	}
}

// Confirm asks a yes/no question defaulting to no. Anything but yes aborts.
func (p *Prompter) Confirm(prompt string) error {
	for {
		fmt.Fprintf(p.out.Writer(), "%s [y/N]: ", prompt)
		answer, err := p.readLine()
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return nil
		case "", "n", "no":
			return lib.ErrAborted
		default:
			fmt.Fprintln(p.out.Writer(), "Error: invalid input")
		}
	}
}

// readLine returns the next trimmed input line; a closed input aborts
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		fmt.Fprintln(p.out.Writer())
		if errors.Is(err, io.EOF) {
			return "", lib.ErrAborted
		}
		return "", lib.ErrInvalidInput("failed to read input", err)
	}
	return strings.TrimSpace(line), nil
}
