package receipt

import (
	"strings"
	"testing"
	"time"
)

func TestTextRenderer_Render(t *testing.T) {
	renderer := NewTextRenderer("VenComp")

	body, contentType, err := renderer.Render(Receipt{
		PaymentID: 7,
		OrderID:   3,
		Username:  "alice",
		Method:    "card",
		Items: []Item{
			{Name: "Office PC", Price: 100},
			{Name: "Keyboard", Price: 50.5},
		},
		Amount: 150.5,
		PaidAt: time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(contentType, "text/plain") {
		t.Errorf("expected text/plain content type, got %q", contentType)
	}

	text := string(body)
	for _, want := range []string{
		"Receipt #7",
		"Order:    3",
		"Customer: alice",
		"Office PC",
		"150.50",
		"2025-03-14 15:09:26",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected receipt to contain %q, got:\n%s", want, text)
		}
	}
}

func TestTextRenderer_DefaultStoreName(t *testing.T) {
	renderer := NewTextRenderer("")
	if renderer.StoreName != "VenComp" {
		t.Errorf("expected default store name, got %q", renderer.StoreName)
	}
}
