package transfer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		code         string
		lang         string
		wantBase     float64
		wantNumber   string
		wantCurrency string
	}{
		{name: "english", amount: "1234.5", code: "EUR", lang: "en", wantBase: 1234.5, wantNumber: "1,234.50", wantCurrency: "EUR"},
		{name: "italian", amount: "1234.5", code: "EUR", lang: "it", wantBase: 1234.5, wantNumber: "1.234,50", wantCurrency: "EUR"},
		{name: "rounded to currency scale", amount: "9.999", code: "USD", lang: "en", wantBase: 10, wantNumber: "10.00", wantCurrency: "USD"},
		{name: "unknown currency", amount: "3", code: "???", lang: "en", wantBase: 3, wantNumber: "3.00", wantCurrency: "EUR"},
		{name: "unknown language", amount: "3", code: "EUR", lang: "", wantBase: 3, wantNumber: "3.00", wantCurrency: "EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FormatPrice(decimal.RequireFromString(tt.amount), tt.code, tt.lang)

			assert.Equal(t, tt.wantBase, p.Base)
			assert.Equal(t, tt.wantCurrency, p.Currency)
			assert.True(t, strings.HasSuffix(p.Formatted, " "+tt.wantNumber), p.Formatted)
		})
	}
}
