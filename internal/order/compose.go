package order

import (
	"fmt"
	"strings"

	"daggys-menu/internal/dispatch"
	"daggys-menu/internal/pricing"
)

// composeMessage builds the outbound order notification: subject, the
// multi-section body handed to the mail intent, and the short SMS-style
// summary.
func (s *Submission) composeMessage() (dispatch.Message, error) {
	lines := s.orderLines()

	subtotal, err := pricing.Subtotal(lines)
	if err != nil {
		return dispatch.Message{}, err
	}
	discount := pricing.DiscountValue(subtotal, s.discountPct())
	total := pricing.Total(subtotal, discount)
	info := s.Form.customerInfo()

	var subject string
	if s.foodItem != nil {
		subject = fmt.Sprintf("Delivery Order - %s (x%d)", s.foodItem.Name, s.quantity)
	} else {
		subject = fmt.Sprintf("Delivery Order - %d items", pricing.ItemCount(lines))
	}

	var b strings.Builder
	b.WriteString("New Delivery Order from Daggy's Menu\n\n")

	b.WriteString("ORDER DETAILS:\n")
	if s.foodItem != nil {
		fmt.Fprintf(&b, "- Item: %s\n", s.foodItem.Name)
		fmt.Fprintf(&b, "- Quantity: %d\n", s.quantity)
		fmt.Fprintf(&b, "- Unit Price: %s\n", s.foodItem.Price)
	} else {
		for _, line := range lines {
			fmt.Fprintf(&b, "- %s (x%d) - %s each\n", line.Name, line.Quantity, line.Price)
		}
	}
	fmt.Fprintf(&b, "- Subtotal: $%s\n", pricing.Format(subtotal))
	if s.discountApplied {
		fmt.Fprintf(&b, "- Discount (%d%%): -$%s\n", s.discountPercent, pricing.Format(discount))
	}
	fmt.Fprintf(&b, "- Total: $%s\n", pricing.Format(total))

	b.WriteString("\nCUSTOMER INFORMATION:\n")
	fmt.Fprintf(&b, "- Name: %s %s\n", info.FirstName, info.LastName)
	fmt.Fprintf(&b, "- Email: %s\n", info.Email)
	fmt.Fprintf(&b, "- Phone: %s\n", info.Phone)

	b.WriteString("\nDELIVERY ADDRESS:\n")
	fmt.Fprintf(&b, "%s\n", info.Address)
	if info.ZipCode != "" {
		fmt.Fprintf(&b, "%s, %s\n", info.City, info.ZipCode)
	} else {
		fmt.Fprintf(&b, "%s\n", info.City)
	}

	if info.SpecialInstructions != "" {
		b.WriteString("\nSPECIAL INSTRUCTIONS:\n")
		fmt.Fprintf(&b, "%s\n", info.SpecialInstructions)
	}

	if s.foodItem != nil {
		b.WriteString("\nITEM DETAILS:\n")
		fmt.Fprintf(&b, "- Description: %s\n", orNA(s.foodItem.Description))
		fmt.Fprintf(&b, "- Calories: %s\n", orNA(s.foodItem.Calories))
		fmt.Fprintf(&b, "- Ingredients: %s\n", orNA(strings.Join(s.foodItem.Ingredients, ", ")))
	}

	b.WriteString("\nPlease confirm this order and provide estimated delivery time.\n\nThank you!\n")

	summary := fmt.Sprintf(
		"New order from %s %s. Total: $%s. Check email for details.",
		info.FirstName, info.LastName, pricing.Format(total),
	)

	return dispatch.Message{
		Subject: subject,
		Body:    b.String(),
		Summary: summary,
	}, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
