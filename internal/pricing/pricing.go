// Package pricing is the single home of order arithmetic. Cart totals,
// history totals and submission totals all go through these functions so the
// numbers can never diverge.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"daggys-menu/internal/model"
)

// ParsePrice parses a catalogue price string of the form "$D.DD".
// The catalogue guarantees well-formed prices; a malformed string is still
// reported as an error rather than silently treated as zero.
func ParsePrice(price string) (decimal.Decimal, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(price), "$")
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed price %q: %w", price, err)
	}
	return d, nil
}

// Subtotal sums unit price times quantity over lines.
func Subtotal(lines []model.CartLine) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range lines {
		unit, err := ParsePrice(line.Price)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total, nil
}

// DiscountValue computes percent% of subtotal, rounded to 2 decimal places.
// A zero percent yields zero.
func DiscountValue(subtotal decimal.Decimal, percent int) decimal.Decimal {
	if percent <= 0 {
		return decimal.Zero
	}
	return subtotal.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100)).Round(2)
}

// Total is subtotal minus the discount value.
func Total(subtotal, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount)
}

// ItemCount sums quantities across lines.
func ItemCount(lines []model.CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// Format renders a monetary amount with exactly 2 decimal places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// OrderLines normalises an order payload into cart lines: a cart order's
// lines as-is, or a single (item, quantity) order as one line.
func OrderLines(p model.OrderPayload) []model.CartLine {
	if len(p.CartItems) > 0 {
		return p.CartItems
	}
	if p.FoodItem != nil {
		return []model.CartLine{{MenuItem: *p.FoodItem, Quantity: p.Quantity}}
	}
	return nil
}
