package command

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// CreateSpecificationCommand represents the command to register a specification
type CreateSpecificationCommand struct {
	Name            string
	Description     string
	Brand           string
	SpecType        string
	AdditionalPrice float64
}

// CreateSpecificationHandler handles specification creation
type CreateSpecificationHandler struct {
	repo domain.SpecificationRepository
}

func NewCreateSpecificationHandler(repo domain.SpecificationRepository) *CreateSpecificationHandler {
	return &CreateSpecificationHandler{repo: repo}
}

// Handle executes the create specification command
func (h *CreateSpecificationHandler) Handle(cmd CreateSpecificationCommand) (*domain.Specification, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("specification name is required")
	}
	if cmd.AdditionalPrice < 0 {
		return nil, fmt.Errorf("additional price cannot be negative")
	}

	spec := &domain.Specification{
		Name:            cmd.Name,
		Description:     cmd.Description,
		Brand:           cmd.Brand,
		SpecType:        cmd.SpecType,
		AdditionalPrice: cmd.AdditionalPrice,
	}

	if err := h.repo.Create(spec); err != nil {
		return nil, fmt.Errorf("failed to create specification: %w", err)
	}
	return spec, nil
}
