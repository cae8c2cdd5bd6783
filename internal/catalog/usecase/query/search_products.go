package query

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// SearchProductsQuery searches products by name or description substring
type SearchProductsQuery struct {
	Term   string
	Limit  int
	Offset int
}

// SearchProductsHandler handles product search queries
type SearchProductsHandler struct {
	repo domain.ProductRepository
}

func NewSearchProductsHandler(repo domain.ProductRepository) *SearchProductsHandler {
	return &SearchProductsHandler{repo: repo}
}

// Handle executes the search products query
func (h *SearchProductsHandler) Handle(q SearchProductsQuery) ([]domain.Product, error) {
	if q.Term == "" {
		return nil, fmt.Errorf("search term is required")
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}

	products, err := h.repo.Search(q.Term, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}
