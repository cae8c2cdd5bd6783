package command

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// UpdateProductCommand represents the command to edit product info
type UpdateProductCommand struct {
	ID          uint
	Name        string
	Description string
	BasePrice   float64
	Stock       int
	Image       string
	Category    string
	ProductType string
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}
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
		ID:          cmd.ID,
		Name:        cmd.Name,
		Description: cmd.Description,
		BasePrice:   cmd.BasePrice,
		Stock:       cmd.Stock,
		Image:       cmd.Image,
		Category:    cmd.Category,
		ProductType: cmd.ProductType,
	}

	if err := h.repo.Update(product); err != nil {
		if err == domain.ErrProductNotFound || err == domain.ErrDuplicateName {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return h.repo.FindByID(cmd.ID)
}
