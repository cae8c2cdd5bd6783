// Package receipt renders payment receipts for download.
package receipt

import (
	"fmt"
	"strings"
	"time"
)

type Item struct {
	Name  string
	Price float64
}

type Receipt struct {
	PaymentID uint
	OrderID   uint
	Username  string
	Method    string
	Items     []Item
	Amount    float64
	PaidAt    time.Time
}

// Renderer turns a receipt into downloadable bytes.
type Renderer interface {
	Render(r Receipt) ([]byte, string, error)
}

// TextRenderer produces a plain-text receipt.
type TextRenderer struct {
	StoreName string
}

func NewTextRenderer(storeName string) *TextRenderer {
	if storeName == "" {
		storeName = "VenComp"
	}
	return &TextRenderer{StoreName: storeName}
}

// Render returns the receipt body and its content type.
func (t *TextRenderer) Render(r Receipt) ([]byte, string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", t.StoreName)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", len(t.StoreName)))
	fmt.Fprintf(&b, "Receipt #%d\n", r.PaymentID)
	fmt.Fprintf(&b, "Order:    %d\n", r.OrderID)
	if r.Username != "" {
		fmt.Fprintf(&b, "Customer: %s\n", r.Username)
	}
	fmt.Fprintf(&b, "Method:   %s\n", r.Method)
	fmt.Fprintf(&b, "Date:     %s\n\n", r.PaidAt.Format("2006-01-02 15:04:05"))

	for _, item := range r.Items {
		fmt.Fprintf(&b, "  %-40s %10.2f\n", item.Name, item.Price)
	}
	fmt.Fprintf(&b, "  %-40s %10s\n", "", strings.Repeat("-", 10))
	fmt.Fprintf(&b, "  %-40s %10.2f\n", "TOTAL", r.Amount)

	return []byte(b.String()), "text/plain; charset=utf-8", nil
}
