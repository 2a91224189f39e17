package console

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	internalstrings "github.com/amonks/solidtodo/internal/strings"
)

// prompter reads answers to questions from a line-oriented input.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// readLine prints prompt and returns the next line without its line ending.
// It returns io.EOF once the input is exhausted.
func (p *prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return internalstrings.TrimTrailingCarriageReturn(p.in.Text()), nil
}

// readString asks until a non-empty answer is given.
func (p *prompter) readString(prompt string) (string, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		fmt.Fprintln(p.out, "Please, try again")
	}
}

// readInt asks until an integer is given.
func (p *prompter) readInt(prompt string) (int, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
			return n, nil
		}
		fmt.Fprintln(p.out, "Please, try again")
	}
}

// selectOption asks until one of options is given, matching case-insensitively.
// An empty answer picks defaultOption when it is not empty. The answer is
// returned lowercased.
func (p *prompter) selectOption(prompt string, options []string, defaultOption string) (string, error) {
	choices := strings.Join(options, "/")
	question := fmt.Sprintf("%s (%s): ", prompt, choices)
	if defaultOption != "" {
		question = fmt.Sprintf("%s (%s) [%s]: ", prompt, choices, defaultOption)
	}

	normalizedOptions := make([]string, 0, len(options))
	for _, option := range options {
		normalizedOptions = append(normalizedOptions, internalstrings.NormalizeLower(option))
	}

	for {
		line, err := p.readLine(question)
		if err != nil {
			return "", err
		}
		answer := internalstrings.NormalizeLowerTrimSpace(line)
		if answer == "" && defaultOption != "" {
			return internalstrings.NormalizeLower(defaultOption), nil
		}
		if slices.Contains(normalizedOptions, answer) {
			return answer, nil
		}
		fmt.Fprintln(p.out, "Please, enter one of the listed options")
	}
}

// confirm asks a yes/no question that defaults to no.
func (p *prompter) confirm(message string) (bool, error) {
	answer, err := p.selectOption(message, []string{"y", "yes", "n", "no"}, "n")
	if err != nil {
		return false, err
	}
	return answer == "y" || answer == "yes", nil
}
