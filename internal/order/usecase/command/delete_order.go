package command

import (
	"errors"
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/order/domain"
)

type DeleteOrderCommand struct {
	OrderID uint `json:"order_id"`
	UserID  uint `json:"user_id"`
	IsAdmin bool `json:"-"`
}

type DeleteOrderHandler struct {
	orderRepo domain.OrderRepository
}

func NewDeleteOrderHandler(orderRepo domain.OrderRepository) *DeleteOrderHandler {
	return &DeleteOrderHandler{orderRepo: orderRepo}
}

func (h *DeleteOrderHandler) Handle(cmd DeleteOrderCommand) error {
	if cmd.OrderID == 0 {
		return fmt.Errorf("order id is required")
	}

	order, err := h.orderRepo.FindByID(cmd.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to find order: %w", err)
	}
	if order.UserID != cmd.UserID && !cmd.IsAdmin {
		return domain.ErrNotOwner
	}
	if order.IsPaid() {
		return domain.ErrOrderPaid
	}

	if err := h.orderRepo.Delete(cmd.OrderID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}
