package checkout

import (
	"errors"
	"regexp"
	"strings"
)

// Card carries the fields of the embedded stripe form. Validation here is
// format and length only; the charge itself is the payment provider's
// problem.
type Card struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
	Holder string `json:"holder"`
}

var (
	ErrCardNumber = errors.New("card number must be 13 to 16 digits")
	ErrCardExpiry = errors.New("expiry must be MM/YY")
	ErrCardCVC    = errors.New("cvc must be 3 or 4 digits")
	ErrCardHolder = errors.New("cardholder name is required")
)

var (
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvcRe    = regexp.MustCompile(`^\d{3,4}$`)
)

func (c Card) Validate() error {
	digits := digitsOnly(c.Number)
	if len(digits) < 13 || len(digits) > 16 {
		return ErrCardNumber
	}
	if !expiryRe.MatchString(c.Expiry) {
		return ErrCardExpiry
	}
	if !cvcRe.MatchString(c.CVC) {
		return ErrCardCVC
	}
	if strings.TrimSpace(c.Holder) == "" {
		return ErrCardHolder
	}
	return nil
}

// FormatNumber renders a card number grouped in 4s, capped at 16 digits.
func FormatNumber(number string) string {
	digits := digitsOnly(number)
	if len(digits) > 16 {
		digits = digits[:16]
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
