package pdfgen

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultCurrencyCode = "INR"

// Currency describes how prices are labelled and grouped. Symbol is plain text:
// the core PDF fonts cannot encode the rupee sign.
type Currency struct {
	Code   string
	Symbol string
	Tag    language.Tag
}

var currencies = map[string]Currency{
	"INR": {Code: "INR", Symbol: "Rs.", Tag: language.MustParse("en-IN")},
	"USD": {Code: "USD", Symbol: "$", Tag: language.AmericanEnglish},
}

// LookupCurrency resolves a currency code, falling back to INR.
func LookupCurrency(code string) Currency {
	if c, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return c
	}
	return currencies[DefaultCurrencyCode]
}

// FormatAmount renders e.g. "Rs. 50,000.00/-".
func (c Currency) FormatAmount(amount float64) string {
	p := message.NewPrinter(c.Tag)
	return fmt.Sprintf("%s %s/-", c.Symbol, p.Sprintf("%v", number.Decimal(amount, number.Scale(2))))
}

// PriceHeader is the commercial table's price column title.
func (c Currency) PriceHeader() string {
	return fmt.Sprintf("Price (%s)", c.Code)
}

func formatDate(t time.Time) string {
	return t.Format("02-01-2006")
}
