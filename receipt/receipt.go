// Package receipt builds the customer-facing receipt as a self-contained
// HTML string. The print collaborator treats the string as opaque.
package receipt

import (
	"fmt"
	"html"
	"strings"

	"cafepos/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func money(amount float64) string {
	return printer.Sprintf("$%.2f", amount)
}

// RenderReceiptHTML renders one order with its items. BrandLogo may be a
// data URI or empty.
func RenderReceiptHTML(order *model.Order, items []model.OrderItem, brandName, brandLogo string) string {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>
body { font-family: monospace; width: 280px; margin: 0 auto; }
h1 { font-size: 16px; text-align: center; }
img.logo { display: block; margin: 0 auto; max-width: 120px; }
table { width: 100%; border-collapse: collapse; font-size: 12px; }
td.qty { text-align: center; }
td.amount { text-align: right; }
tr.total td { border-top: 1px dashed #000; font-weight: bold; }
p.token { text-align: center; font-size: 20px; font-weight: bold; }
p.meta { font-size: 11px; text-align: center; }
</style></head><body>`)

	if brandLogo != "" {
		sb.WriteString(fmt.Sprintf(`<img class="logo" src="%s" alt="">`, html.EscapeString(brandLogo)))
	}
	sb.WriteString(fmt.Sprintf(`<h1>%s</h1>`, html.EscapeString(brandName)))
	sb.WriteString(fmt.Sprintf(`<p class="token">Token #%d</p>`, order.TokenNumber))
	sb.WriteString(fmt.Sprintf(`<p class="meta">Receipt %d &middot; %s &middot; %s</p>`,
		order.ID, html.EscapeString(order.CreatedAt), html.EscapeString(order.PaymentMethod)))

	sb.WriteString(`<table><tbody>`)
	for _, item := range items {
		sb.WriteString(`<tr>`)
		sb.WriteString(fmt.Sprintf(`<td>%s</td>`, html.EscapeString(item.ProductName)))
		sb.WriteString(fmt.Sprintf(`<td class="qty">x%d</td>`, item.Quantity))
		sb.WriteString(fmt.Sprintf(`<td class="amount">%s</td>`, money(item.Subtotal)))
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`<tr class="total">`)
	sb.WriteString(`<td>Total</td><td></td>`)
	sb.WriteString(fmt.Sprintf(`<td class="amount">%s</td>`, money(order.TotalAmount)))
	sb.WriteString(`</tr>`)
	sb.WriteString(`</tbody></table>`)

	if order.Notes != "" {
		sb.WriteString(fmt.Sprintf(`<p class="meta">%s</p>`, html.EscapeString(order.Notes)))
	}
	if order.Status == "cancelled" {
		sb.WriteString(`<p class="meta">*** CANCELLED ***</p>`)
	}
	sb.WriteString(`<p class="meta">Thank you!</p>`)
	sb.WriteString(`</body></html>`)

	return sb.String()
}
