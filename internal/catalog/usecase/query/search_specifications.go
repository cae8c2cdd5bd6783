package query

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

// SearchSpecificationsQuery searches specifications by name, or by brand and
// type when Name is empty
type SearchSpecificationsQuery struct {
	Name     string
	Brand    string
	SpecType string
	Limit    int
	Offset   int
}

// SearchSpecificationsHandler handles specification search queries
type SearchSpecificationsHandler struct {
	repo domain.SpecificationRepository
}

func NewSearchSpecificationsHandler(repo domain.SpecificationRepository) *SearchSpecificationsHandler {
	return &SearchSpecificationsHandler{repo: repo}
}

// Handle executes the search specifications query
func (h *SearchSpecificationsHandler) Handle(q SearchSpecificationsQuery) ([]domain.Specification, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	var specs []domain.Specification
	var err error
	switch {
	case q.Name != "":
		specs, err = h.repo.SearchByName(q.Name, q.Limit, q.Offset)
	case q.Brand != "" || q.SpecType != "":
		specs, err = h.repo.SearchByBrandAndType(q.Brand, q.SpecType, q.Limit, q.Offset)
	default:
		return nil, fmt.Errorf("a name or brand/type filter is required")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search specifications: %w", err)
	}
	return specs, nil
}
