package domain

import "testing"

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name      string
		basePrice float64
		links     []ProductSpecification
		want      float64
	}{
		{
			name:      "no links",
			basePrice: 500,
			want:      500,
		},
		{
			name:      "single link with quantity",
			basePrice: 500,
			links: []ProductSpecification{
				{Quantity: 2, Specification: Specification{AdditionalPrice: 20}},
			},
			want: 540,
		},
		{
			name:      "multiple links",
			basePrice: 500,
			links: []ProductSpecification{
				{Quantity: 1, Specification: Specification{AdditionalPrice: 40}},
				{Quantity: 2, Specification: Specification{AdditionalPrice: 80}},
			},
			want: 700,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectivePrice(tt.basePrice, tt.links); got != tt.want {
				t.Errorf("EffectivePrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProduct_IsAvailable(t *testing.T) {
	p := &Product{Stock: 1}
	if !p.IsAvailable() {
		t.Error("expected product with stock to be available")
	}
	p.Stock = 0
	if p.IsAvailable() {
		t.Error("expected product without stock to be unavailable")
	}
}
