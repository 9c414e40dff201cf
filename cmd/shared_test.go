package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		cents    int64
		currency string
		want     string
	}{
		{"whole euros", 15000, "EUR", "150.00 EUR"},
		{"with cents", 12345, "EUR", "123.45 EUR"},
		{"zero", 0, "EUR", "0.00 EUR"},
		{"single cent", 1, "EUR", "0.01 EUR"},
		{"negative credit note", -500, "EUR", "-5.00 EUR"},
		{"other currency", 9999, "USD", "99.99 USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatAmount(tt.cents, tt.currency))
		})
	}
}
