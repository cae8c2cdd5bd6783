package query

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/order/domain"
)

type ListOrdersQuery struct {
	UserID uint `json:"user_id"`
	Limit  int  `json:"limit"`
	Offset int  `json:"offset"`
}

type ListOrdersHandler struct {
	orderRepo domain.OrderRepository
}

func NewListOrdersHandler(orderRepo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{orderRepo: orderRepo}
}

func (h *ListOrdersHandler) Handle(q ListOrdersQuery) ([]domain.Order, error) {
	if q.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	orders, err := h.orderRepo.FindByUser(q.UserID, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
