package query

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/order/domain"
)

// GetCartQuery resolves the caller's active cart, opening one if the user
// has no open order yet.
type GetCartQuery struct {
	UserID uint `json:"user_id"`
}

type GetCartHandler struct {
	orderRepo domain.OrderRepository
}

func NewGetCartHandler(orderRepo domain.OrderRepository) *GetCartHandler {
	return &GetCartHandler{orderRepo: orderRepo}
}

func (h *GetCartHandler) Handle(q GetCartQuery) (*OrderView, error) {
	if q.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}

	cart, err := h.orderRepo.ActiveForUser(q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart: %w", err)
	}

	total, err := h.orderRepo.Total(cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute cart total: %w", err)
	}
	return &OrderView{Order: cart, Total: total}, nil
}
