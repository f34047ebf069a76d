// Package invoice renders order documents. Rendering is behind an interface
// so the PDF engine stays replaceable; the built-in renderer produces a plain
// text document.
package invoice

import (
	"bytes"
	"fmt"

	"github.com/atletia/storefront/internal/models"
)

// Renderer renders a document for an order
type Renderer interface {
	Render(order *models.Order) ([]byte, string, error)
}

// TextRenderer renders a plain text invoice
type TextRenderer struct {
	StoreName string
}

// Render returns the document bytes and their content type
func (tr *TextRenderer) Render(order *models.Order) ([]byte, string, error) {
	buf := bytes.Buffer{}

	name := tr.StoreName
	if name == "" {
		name = "Storefront"
	}

	fmt.Fprintf(&buf, "%s — Invoice\n", name)
	fmt.Fprintf(&buf, "Order: %s\n", order.ID)
	fmt.Fprintf(&buf, "Date: %s\n", order.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(&buf, "Status: %s\n", order.Status)
	if order.ShippingAddress != nil {
		a := order.ShippingAddress
		fmt.Fprintf(&buf, "Ship to: %s, %s, %s %s\n", a.Name, a.Address, a.City, a.PostalCode)
	}
	buf.WriteString("\nItems:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&buf, "  %s x%d @ %d = %d\n", item.ProductID, item.Quantity, item.Price, item.Price*int64(item.Quantity))
	}
	fmt.Fprintf(&buf, "\nTotal: %d\n", order.Total)

	return buf.Bytes(), "text/plain; charset=utf-8", nil
}
