package command

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// ReplaceSpecificationsCommand swaps a product's full specification set
type ReplaceSpecificationsCommand struct {
	ProductID        uint
	SpecificationIDs []uint
}

// ReplaceSpecificationsHandler handles the full link replacement
type ReplaceSpecificationsHandler struct {
	repo domain.ProductRepository
}

func NewReplaceSpecificationsHandler(repo domain.ProductRepository) *ReplaceSpecificationsHandler {
	return &ReplaceSpecificationsHandler{repo: repo}
}

// Handle executes the replace specifications command
func (h *ReplaceSpecificationsHandler) Handle(cmd ReplaceSpecificationsCommand) (*domain.Product, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	product, err := h.repo.ReplaceSpecifications(cmd.ProductID, cmd.SpecificationIDs)
	if err != nil {
		if err == domain.ErrProductNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to replace specifications: %w", err)
	}
	return product, nil
}
