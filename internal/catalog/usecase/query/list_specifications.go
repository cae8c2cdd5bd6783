package query

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// ListSpecificationsQuery represents the query to list specifications
type ListSpecificationsQuery struct {
	Limit  int
	Offset int
}

// ListSpecificationsHandler handles list specification queries
type ListSpecificationsHandler struct {
	repo domain.SpecificationRepository
}

func NewListSpecificationsHandler(repo domain.SpecificationRepository) *ListSpecificationsHandler {
	return &ListSpecificationsHandler{repo: repo}
}

// Handle executes the list specifications query
func (h *ListSpecificationsHandler) Handle(q ListSpecificationsQuery) ([]domain.Specification, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	specs, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list specifications: %w", err)
	}
	return specs, nil
}
