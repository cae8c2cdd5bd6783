package query

import (
	"errors"
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/order/domain"
)

type GetOrderQuery struct {
	OrderID uint `json:"order_id"`
	UserID  uint `json:"user_id"`
	IsAdmin bool `json:"-"`
}

// OrderView is an order plus the total computed from current product prices.
type OrderView struct {
	*domain.Order
	Total float64 `json:"total"`
}

type GetOrderHandler struct {
	orderRepo domain.OrderRepository
}

func NewGetOrderHandler(orderRepo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{orderRepo: orderRepo}
}

func (h *GetOrderHandler) Handle(q GetOrderQuery) (*OrderView, error) {
	if q.OrderID == 0 {
		return nil, fmt.Errorf("order id is required")
	}

	order, err := h.orderRepo.FindByID(q.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.UserID != q.UserID && !q.IsAdmin {
		return nil, domain.ErrNotOwner
	}

	total, err := h.orderRepo.Total(order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute order total: %w", err)
	}
	return &OrderView{Order: order, Total: total}, nil
}
