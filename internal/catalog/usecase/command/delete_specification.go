package command

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// DeleteSpecificationCommand represents the command to delete a specification
type DeleteSpecificationCommand struct {
	ID uint
}

// DeleteSpecificationHandler handles specification deletion
type DeleteSpecificationHandler struct {
	repo domain.SpecificationRepository
}

func NewDeleteSpecificationHandler(repo domain.SpecificationRepository) *DeleteSpecificationHandler {
	return &DeleteSpecificationHandler{repo: repo}
}

// Handle executes the delete specification command
func (h *DeleteSpecificationHandler) Handle(cmd DeleteSpecificationCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("invalid specification id")
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		if err == domain.ErrSpecificationNotFound || err == domain.ErrSpecificationInUse {
			return err
		}
		return fmt.Errorf("failed to delete specification: %w", err)
	}
	return nil
}
