package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xenking/cafepos/internal/domain/money"
)

func TestFormatReceipt_WithDiscount(t *testing.T) {
	res := Result{
		Subtotal: money.MustParse("7.80"),
		Discount: money.MustParse("0.39"),
		Tax:      money.MustParse("0.74"),
		Total:    money.MustParse("8.15"),
	}

	got := FormatReceipt("ESP+SHOT", 2, res, 10)

	want := "Order (ESP+SHOT) x2\n" +
		"Subtotal: 7.80\n" +
		"Discount: -0.39\n" +
		"Tax (10%): 0.74\n" +
		"Total: 8.15"
	assert.Equal(t, want, got)
}

func TestFormatReceipt_OmitsZeroDiscount(t *testing.T) {
	res := Result{
		Subtotal: money.MustParse("2.50"),
		Discount: money.Zero(),
		Tax:      money.MustParse("0.25"),
		Total:    money.MustParse("2.75"),
	}

	got := FormatReceipt("ESP", 1, res, 10)

	assert.NotContains(t, got, "Discount")
	assert.Contains(t, got, "Subtotal: 2.50")
	assert.Contains(t, got, "Tax (10%): 0.25")
	assert.Contains(t, got, "Total: 2.75")
}

func TestFormatItemized(t *testing.T) {
	res := Result{
		Subtotal: money.MustParse("10.00"),
		Discount: money.MustParse("0.50"),
		Tax:      money.MustParse("0.95"),
		Total:    money.MustParse("10.45"),
	}
	lines := []ReceiptLine{
		{Name: "Espresso", Quantity: 2, Total: money.MustParse("5.00")},
		{Name: "Latte", Quantity: 1, Total: money.MustParse("3.20")},
	}

	got := FormatItemized("1002", lines, res, 10)

	assert.Contains(t, got, "Order #1002")
	assert.Contains(t, got, "Espresso x2")
	assert.Contains(t, got, "Latte x1")
	assert.Contains(t, got, "Subtotal: 10.00")
	assert.Contains(t, got, "Discount: -0.50")
	assert.Contains(t, got, "Tax (10%): 0.95")
	assert.Contains(t, got, "Total: 10.45")
}

func TestFormat_Idempotent(t *testing.T) {
	res := Result{
		Subtotal: money.MustParse("7.80"),
		Discount: money.MustParse("0.39"),
		Tax:      money.MustParse("0.74"),
		Total:    money.MustParse("8.15"),
	}

	assert.Equal(t,
		FormatReceipt("ESP", 1, res, 10),
		FormatReceipt("ESP", 1, res, 10),
	)
}
