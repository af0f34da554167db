package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/srgjo27/royale_boxoffice/internal/core/ports"
	"github.com/srgjo27/royale_boxoffice/internal/core/services"
)

// PaymentPrompt asks the patron at the terminal to confirm the charge.
type PaymentPrompt struct {
	in       ports.InputSource
	attempts int
}

func NewPaymentPrompt(in ports.InputSource, attempts int) *PaymentPrompt {
	return &PaymentPrompt{in: in, attempts: attempts}
}

func (p *PaymentPrompt) Authorize(ctx context.Context, amount decimal.Decimal) (bool, error) {
	answer, err := services.PromptText(p.in, fmt.Sprintf("Pay £%s now? (y/n)", amount.StringFixed(2)), p.attempts)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}

	return false, nil
}
