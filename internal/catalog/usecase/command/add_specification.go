package command

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// AddSpecificationCommand links a specification to a product, or increments
// the quantity of an existing link
type AddSpecificationCommand struct {
	ProductID       uint
	SpecificationID uint
	Quantity        int
}

// AddSpecificationHandler handles the link upsert
type AddSpecificationHandler struct {
	repo domain.ProductRepository
}

func NewAddSpecificationHandler(repo domain.ProductRepository) *AddSpecificationHandler {
	return &AddSpecificationHandler{repo: repo}
}

// Handle executes the add specification command
func (h *AddSpecificationHandler) Handle(cmd AddSpecificationCommand) (*domain.Product, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}
	if cmd.SpecificationID == 0 {
		return nil, fmt.Errorf("invalid specification id")
	}
	if cmd.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	product, err := h.repo.AddSpecification(cmd.ProductID, cmd.SpecificationID, cmd.Quantity)
	if err != nil {
		if err == domain.ErrProductNotFound || err == domain.ErrSpecificationNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add specification: %w", err)
	}
	return product, nil
}
