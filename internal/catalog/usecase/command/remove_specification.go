package command

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// RemoveSpecificationCommand removes the link for a (product, specification) pair
type RemoveSpecificationCommand struct {
	ProductID       uint
	SpecificationID uint
}

// RemoveSpecificationHandler handles the link removal
type RemoveSpecificationHandler struct {
	repo domain.ProductRepository
}

func NewRemoveSpecificationHandler(repo domain.ProductRepository) *RemoveSpecificationHandler {
	return &RemoveSpecificationHandler{repo: repo}
}

// Handle executes the remove specification command
func (h *RemoveSpecificationHandler) Handle(cmd RemoveSpecificationCommand) (*domain.Product, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}
	if cmd.SpecificationID == 0 {
		return nil, fmt.Errorf("invalid specification id")
	}

	product, err := h.repo.RemoveSpecification(cmd.ProductID, cmd.SpecificationID)
	if err != nil {
		if err == domain.ErrProductNotFound || err == domain.ErrLinkNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to remove specification: %w", err)
	}
	return product, nil
}
