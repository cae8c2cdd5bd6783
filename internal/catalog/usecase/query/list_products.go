package query

import (
	"context"
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/pkg/cache"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Limit    int
	Offset   int
	Category string
}

// ListProductsHandler handles list products queries, serving from the Redis
// cache when possible
type ListProductsHandler struct {
	repo  domain.ProductRepository
	cache *cache.Cache
}

func NewListProductsHandler(repo domain.ProductRepository, c *cache.Cache) *ListProductsHandler {
	return &ListProductsHandler{repo: repo, cache: c}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) ([]domain.Product, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	key := fmt.Sprintf("catalog:products:%d:%d:%s", q.Limit, q.Offset, q.Category)
	var cached []domain.Product
	if h.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	var products []domain.Product
	var err error
	if q.Category != "" {
		products, err = h.repo.FindByCategory(q.Category, q.Limit, q.Offset)
	} else {
		products, err = h.repo.FindAll(q.Limit, q.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	h.cache.SetJSON(ctx, key, products)
	return products, nil
}
