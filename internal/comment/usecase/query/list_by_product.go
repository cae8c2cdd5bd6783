package query

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/comment/domain"
)

type ListByProductQuery struct {
	ProductID uint `json:"product_id"`
	Limit     int  `json:"limit"`
	Offset    int  `json:"offset"`
}

type ListByProductHandler struct {
	commentRepo domain.CommentRepository
}

func NewListByProductHandler(commentRepo domain.CommentRepository) *ListByProductHandler {
	return &ListByProductHandler{commentRepo: commentRepo}
}

func (h *ListByProductHandler) Handle(q ListByProductQuery) ([]domain.Comment, error) {
	if q.ProductID == 0 {
		return nil, fmt.Errorf("product id is required")
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	comments, err := h.commentRepo.FindByProduct(q.ProductID, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
