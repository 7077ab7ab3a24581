package transfer

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Price is the rendered form of a monetary field.
type Price struct {
	Base      float64 `json:"base"`
	Formatted string  `json:"formatted"`
	Currency  string  `json:"currency"`
}

// FormatPrice renders amount in the ISO 4217 currency code for lang. An
// unknown currency code falls back to EUR.
func FormatPrice(amount decimal.Decimal, code, lang string) Price {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.EUR
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}

	scale, _ := currency.Standard.Rounding(unit)
	rounded := amount.Round(int32(scale))

	p := message.NewPrinter(tag)
	symbol := p.Sprint(currency.Symbol(unit))
	value := p.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(scale)))

	return Price{
		Base:      rounded.InexactFloat64(),
		Formatted: symbol + " " + value,
		Currency:  unit.String(),
	}
}
