package receipt

import (
	"testing"

	"cafepos/model"

	"github.com/stretchr/testify/assert"
)

func sampleOrder() (*model.Order, []model.OrderItem) {
	order := &model.Order{
		ID:            12,
		TokenNumber:   4,
		TotalAmount:   1234.50,
		PaymentMethod: "cash",
		Status:        "completed",
		CreatedAt:     "2026-09-01 10:15:00",
	}
	items := []model.OrderItem{
		{ProductName: "Espresso", Quantity: 2, Price: 3.50, Subtotal: 7.00},
		{ProductName: "Cookie", Quantity: 1, Price: 2.50, Subtotal: 2.50},
	}
	return order, items
}

func TestRenderReceiptHTML(t *testing.T) {
	order, items := sampleOrder()

	out := RenderReceiptHTML(order, items, "Corner Cafe", "")

	assert.Contains(t, out, "Token #4")
	assert.Contains(t, out, "Receipt 12")
	assert.Contains(t, out, "Corner Cafe")
	assert.Contains(t, out, "Espresso")
	assert.Contains(t, out, "x2")
	assert.Contains(t, out, "$7.00")
	// Totals use grouped currency formatting.
	assert.Contains(t, out, "$1,234.50")
	assert.NotContains(t, out, "CANCELLED")
	assert.NotContains(t, out, `class="logo"`)
}

func TestRenderReceiptHTMLCancelledMarker(t *testing.T) {
	order, items := sampleOrder()
	order.Status = "cancelled"

	out := RenderReceiptHTML(order, items, "Corner Cafe", "")
	assert.Contains(t, out, "*** CANCELLED ***")
}

func TestRenderReceiptHTMLEscapesUserContent(t *testing.T) {
	order, items := sampleOrder()
	order.Notes = `<script>alert("x")</script>`
	items[0].ProductName = `Espresso <b>`

	out := RenderReceiptHTML(order, items, `Cafe & Co <"'>`, "")

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "Espresso <b>")
	assert.Contains(t, out, "Cafe &amp; Co")
	assert.Contains(t, out, "Espresso &lt;b&gt;")
}

func TestRenderReceiptHTMLWithLogo(t *testing.T) {
	order, items := sampleOrder()

	out := RenderReceiptHTML(order, items, "Corner Cafe", "data:image/png;base64,AAAA")
	assert.Contains(t, out, `<img class="logo" src="data:image/png;base64,AAAA"`)
}
