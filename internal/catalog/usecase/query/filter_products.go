package query

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// FilterProductsQuery filters products by price range and stock
type FilterProductsQuery struct {
	PriceMin *float64
	PriceMax *float64
	InStock  *bool
	Limit    int
	Offset   int
}

// FilterProductsHandler handles product filter queries
type FilterProductsHandler struct {
	repo domain.ProductRepository
}

func NewFilterProductsHandler(repo domain.ProductRepository) *FilterProductsHandler {
	return &FilterProductsHandler{repo: repo}
}

// Handle executes the filter products query
func (h *FilterProductsHandler) Handle(q FilterProductsQuery) ([]domain.Product, error) {
	if q.PriceMin != nil && q.PriceMax != nil && *q.PriceMin > *q.PriceMax {
		return nil, fmt.Errorf("price_min cannot exceed price_max")
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}

	products, err := h.repo.Filter(domain.ProductFilter{
		PriceMin: q.PriceMin,
		PriceMax: q.PriceMax,
		InStock:  q.InStock,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}
	return products, nil
}
