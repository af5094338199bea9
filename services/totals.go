package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"quotations/models"
)

var hundred = decimal.NewFromInt(100)

// Totals are the money columns stored on a quotation.
type Totals struct {
	Subtotal float64
	Tax      float64
	Discount float64
	Grand    float64
}

// ComputeTotals sums unit prices (quantity is always 1), applies the tax rate
// in percent and subtracts the discount. Amounts are rounded to paise.
func ComputeTotals(items []models.LineItem, taxRate, discount float64) (Totals, error) {
	if taxRate < 0 || discount < 0 {
		return Totals{}, fmt.Errorf("%w: negative tax rate or discount", ErrInvalidInput)
	}
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(it.Price))
		for _, a := range it.SelectedAddons {
			subtotal = subtotal.Add(decimal.NewFromFloat(a.Price))
		}
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Div(hundred).Round(2)
	disc := decimal.NewFromFloat(discount).Round(2)
	gross := subtotal.Add(tax)
	if disc.GreaterThan(gross) {
		return Totals{}, fmt.Errorf("%w: discount %s exceeds total %s", ErrInvalidInput, disc.StringFixed(2), gross.StringFixed(2))
	}
	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Discount: disc.InexactFloat64(),
		Grand:    gross.Sub(disc).InexactFloat64(),
	}, nil
}
