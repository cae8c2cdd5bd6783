package command

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/order/domain"
)

type CreateOrderCommand struct {
	UserID     uint   `json:"user_id"`
	ProductIDs []uint `json:"product_ids"`
}

type CreateOrderHandler struct {
	orderRepo domain.OrderRepository
}

func NewCreateOrderHandler(orderRepo domain.OrderRepository) *CreateOrderHandler {
	return &CreateOrderHandler{orderRepo: orderRepo}
}

func (h *CreateOrderHandler) Handle(cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}

	order, err := h.orderRepo.Create(cmd.UserID, cmd.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}
