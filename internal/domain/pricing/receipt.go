package pricing

import (
	"fmt"
	"strings"

	"github.com/xenking/cafepos/internal/domain/money"
)

// ReceiptLine is one itemized line on a receipt.
type ReceiptLine struct {
	Name     string
	Quantity int
	Total    money.Money
}

// FormatReceipt renders a single-recipe order header followed by the pricing
// block. Formatting is pure: the same inputs always produce the same text.
func FormatReceipt(label string, qty int, res Result, taxPercent int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order (%s) x%d\n", label, qty)
	writePricing(&b, res, taxPercent)
	return b.String()
}

// FormatItemized renders an order header, one line per item, and the pricing
// block.
func FormatItemized(orderID string, lines []ReceiptLine, res Result, taxPercent int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%s\n", orderID)
	for _, l := range lines {
		fmt.Fprintf(&b, "  %s x%d  %s\n", l.Name, l.Quantity, l.Total)
	}
	writePricing(&b, res, taxPercent)
	return b.String()
}

// writePricing emits the subtotal, an optional discount line (only when the
// discount is positive), the tax line labeled with its percent, and the total.
func writePricing(b *strings.Builder, res Result, taxPercent int) {
	fmt.Fprintf(b, "Subtotal: %s\n", res.Subtotal)
	if res.Discount.IsPositive() {
		fmt.Fprintf(b, "Discount: -%s\n", res.Discount)
	}
	fmt.Fprintf(b, "Tax (%d%%): %s\n", taxPercent, res.Tax)
	fmt.Fprintf(b, "Total: %s", res.Total)
}
