package command

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("invalid product id")
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		if err == domain.ErrProductNotFound {
			return err
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
