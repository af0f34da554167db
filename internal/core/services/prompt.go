package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
	"github.com/srgjo27/royale_boxoffice/internal/core/ports"
)

// PromptInt asks for an integer up to attempts times. Malformed answers are
// re-prompted; any other input error (such as end of input) is returned at once.
func PromptInt(in ports.InputSource, prompt string, attempts int) (int, error) {
	var lastErr error
	for i := 0; i < max(attempts, 1); i++ {
		n, err := in.NextInt(prompt)
		if err == nil {
			return n, nil
		}

		if !errors.Is(err, domain.ErrMalformedInput) {
			return 0, err
		}

		lastErr = err
	}

	return 0, fmt.Errorf("no valid answer after %d attempts: %w", max(attempts, 1), lastErr)
}

// PromptCount is PromptInt restricted to non-negative answers.
func PromptCount(in ports.InputSource, prompt string, attempts int) (int, error) {
	counting := countSource{in}

	return PromptInt(counting, prompt, attempts)
}

// PromptText re-prompts on blank answers.
func PromptText(in ports.InputSource, prompt string, attempts int) (string, error) {
	for i := 0; i < max(attempts, 1); i++ {
		s, err := in.NextText(prompt)
		if err != nil && !errors.Is(err, domain.ErrMalformedInput) {
			return "", err
		}

		if s = strings.TrimSpace(s); err == nil && s != "" {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w: no answer after %d attempts", domain.ErrMalformedInput, max(attempts, 1))
}

type countSource struct {
	ports.InputSource
}

func (c countSource) NextInt(prompt string) (int, error) {
	n, err := c.InputSource.NextInt(prompt)
	if err != nil {
		return 0, err
	}

	if n < 0 {
		return 0, fmt.Errorf("%w: %d is negative", domain.ErrMalformedInput, n)
	}

	return n, nil
}
