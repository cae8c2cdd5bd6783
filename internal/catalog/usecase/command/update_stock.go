package command

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// UpdateStockCommand represents the command to set product stock
type UpdateStockCommand struct {
	ProductID uint
	Stock     int
}

// UpdateStockHandler handles stock updates
type UpdateStockHandler struct {
	repo domain.ProductRepository
}

func NewUpdateStockHandler(repo domain.ProductRepository) *UpdateStockHandler {
	return &UpdateStockHandler{repo: repo}
}

// Handle executes the update stock command
func (h *UpdateStockHandler) Handle(cmd UpdateStockCommand) error {
	if cmd.ProductID == 0 {
		return fmt.Errorf("invalid product id")
	}
	if cmd.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}

	if err := h.repo.UpdateStock(cmd.ProductID, cmd.Stock); err != nil {
		if err == domain.ErrProductNotFound {
			return err
		}
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return nil
}
