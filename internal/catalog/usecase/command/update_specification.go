package command

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// UpdateSpecificationCommand represents the command to edit a specification
type UpdateSpecificationCommand struct {
	ID              uint
	Name            string
	Description     string
	Brand           string
	SpecType        string
	AdditionalPrice float64
}

// UpdateSpecificationHandler handles specification updates
type UpdateSpecificationHandler struct {
	repo domain.SpecificationRepository
}

func NewUpdateSpecificationHandler(repo domain.SpecificationRepository) *UpdateSpecificationHandler {
	return &UpdateSpecificationHandler{repo: repo}
}

// Handle executes the update specification command.
// Note: changing AdditionalPrice here does not rewrite stored product prices;
// linked products keep the price computed when the link was made.
func (h *UpdateSpecificationHandler) Handle(cmd UpdateSpecificationCommand) (*domain.Specification, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("invalid specification id")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("specification name is required")
	}
	if cmd.AdditionalPrice < 0 {
		return nil, fmt.Errorf("additional price cannot be negative")
	}

	spec := &domain.Specification{
		ID:              cmd.ID,
		Name:            cmd.Name,
		Description:     cmd.Description,
		Brand:           cmd.Brand,
		SpecType:        cmd.SpecType,
		AdditionalPrice: cmd.AdditionalPrice,
	}

	if err := h.repo.Update(spec); err != nil {
		if err == domain.ErrSpecificationNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update specification: %w", err)
	}
	return h.repo.FindByID(cmd.ID)
}
