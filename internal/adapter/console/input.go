package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
)

// Input reads one answer per line. It returns io.EOF once the reader is exhausted.
type Input struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewInput(r io.Reader, out io.Writer) *Input {
	return &Input{scanner: bufio.NewScanner(r), out: out}
}

func (i *Input) NextInt(prompt string) (int, error) {
	line, err := i.NextText(prompt)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrMalformedInput, line)
	}

	return n, nil
}

func (i *Input) NextText(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprintf(i.out, "%s\n> ", prompt)
	}

	if !i.scanner.Scan() {
		if err := i.scanner.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return strings.TrimSpace(i.scanner.Text()), nil
}
