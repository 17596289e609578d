// Package view renders storefront state into HTML fragments. Renderers
// are pure functions of their inputs: the caller swaps the whole fragment
// on every state change, so no diffing is needed at these catalog sizes.
// All user- and product-supplied text is escaped before insertion.
package view

import (
	"fmt"
	"html"
	"strings"

	"simplemarket/internal/cart"
	"simplemarket/internal/order"
	"simplemarket/internal/product"

	"github.com/shopspring/decimal"
)

// RevenueErrorSentinel replaces the revenue figure when the fetch fails.
const RevenueErrorSentinel = "Error"

func ProductList(products []product.Product) string {
	if len(products) == 0 {
		return `<p class="empty">No products available.</p>`
	}

	var b strings.Builder
	b.WriteString("<ul class=\"product-list\">\n")
	for _, p := range products {
		fmt.Fprintf(&b,
			"  <li data-id=%q><strong>%s</strong> $%s (%d in stock)",
			html.EscapeString(p.ID),
			html.EscapeString(p.Name),
			p.Price.StringFixed(2),
			p.AvailableQuantity,
		)
		if p.Description != "" {
			fmt.Fprintf(&b, " - %s", html.EscapeString(p.Description))
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>")
	return b.String()
}

func CartPanel(lines []cart.Line, total decimal.Decimal) string {
	if len(lines) == 0 {
		return `<p class="empty">Your cart is empty.</p>`
	}

	var b strings.Builder
	b.WriteString("<ul class=\"cart-items\">\n")
	for _, l := range lines {
		fmt.Fprintf(&b,
			"  <li data-id=%q>%s x %d - $%s</li>\n",
			html.EscapeString(l.ProductID),
			html.EscapeString(l.Name),
			l.Quantity,
			l.Subtotal().StringFixed(2),
		)
	}
	b.WriteString("</ul>\n")
	fmt.Fprintf(&b, `<p class="cart-total">Total: $%s</p>`, total.StringFixed(2))
	return b.String()
}

func OrderList(orders []order.Order) string {
	if len(orders) == 0 {
		return `<p class="empty">No orders yet.</p>`
	}

	var b strings.Builder
	b.WriteString("<ul class=\"order-list\">\n")
	for _, o := range orders {
		fmt.Fprintf(&b,
			"  <li>%s x %d - $%s for %s (%s)</li>\n",
			html.EscapeString(o.ProductName),
			o.Quantity,
			o.TotalPrice.StringFixed(2),
			html.EscapeString(o.BuyerName),
			o.OrderDate.Format("2006-01-02 15:04"),
		)
	}
	b.WriteString("</ul>")
	return b.String()
}

// RevenueBadge formats the revenue aggregate, degrading to a sentinel
// string when the fetch failed.
func RevenueBadge(revenue decimal.Decimal, err error) string {
	if err != nil {
		return RevenueErrorSentinel
	}
	return "$" + revenue.StringFixed(2)
}
