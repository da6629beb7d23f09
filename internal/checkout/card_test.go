package checkout

import (
	"errors"
	"testing"
)

func validCard() Card {
	return Card{
		Number: "4242 4242 4242 4242",
		Expiry: "09/27",
		CVC:    "123",
		Holder: "Amine Marwani",
	}
}

func TestCardValidate(t *testing.T) {
	tests := map[string]struct {
		mutate  func(*Card)
		wantErr error
	}{
		"valid":                    {mutate: func(c *Card) {}},
		"spaces in number allowed": {mutate: func(c *Card) { c.Number = "4242424242424242" }},
		"four digit cvc allowed":   {mutate: func(c *Card) { c.CVC = "1234" }},
		"number too short": {
			mutate:  func(c *Card) { c.Number = "4242 4242" },
			wantErr: ErrCardNumber,
		},
		"number with letters": {
			mutate:  func(c *Card) { c.Number = "4242 abcd 4242 4242" },
			wantErr: ErrCardNumber,
		},
		"expiry month out of range": {
			mutate:  func(c *Card) { c.Expiry = "13/27" },
			wantErr: ErrCardExpiry,
		},
		"expiry missing zero pad": {
			mutate:  func(c *Card) { c.Expiry = "9/27" },
			wantErr: ErrCardExpiry,
		},
		"cvc too short": {
			mutate:  func(c *Card) { c.CVC = "12" },
			wantErr: ErrCardCVC,
		},
		"cvc too long": {
			mutate:  func(c *Card) { c.CVC = "12345" },
			wantErr: ErrCardCVC,
		},
		"blank holder": {
			mutate:  func(c *Card) { c.Holder = "   " },
			wantErr: ErrCardHolder,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := validCard()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"groups of four":       {in: "4242424242424242", want: "4242 4242 4242 4242"},
		"strips non digits":    {in: "4242-4242-4242-4242", want: "4242 4242 4242 4242"},
		"partial entry":        {in: "42424", want: "4242 4"},
		"capped at 16 digits":  {in: "42424242424242429999", want: "4242 4242 4242 4242"},
		"empty stays empty":    {in: "", want: ""},
		"letters are dropped":  {in: "4a2b4c2d", want: "4242"},
		"already grouped noop": {in: "4242 4242 4242 4242", want: "4242 4242 4242 4242"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := FormatNumber(tt.in); got != tt.want {
				t.Fatalf("FormatNumber(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
