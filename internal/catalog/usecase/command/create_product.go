package command

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name             string
	Description      string
	BasePrice        float64
	Stock            int
	Image            string
	Category         string
	ProductType      string
	SpecificationIDs []uint
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.BasePrice < 0 {
		return nil, fmt.Errorf("base price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	product := &domain.Product{
		Name:        cmd.Name,
		Description: cmd.Description,
		BasePrice:   cmd.BasePrice,
		Stock:       cmd.Stock,
		Image:       cmd.Image,
		Category:    cmd.Category,
		ProductType: cmd.ProductType,
	}

	if err := h.repo.Create(product, cmd.SpecificationIDs); err != nil {
		if err == domain.ErrDuplicateName {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return h.repo.FindByID(product.ID)
}
