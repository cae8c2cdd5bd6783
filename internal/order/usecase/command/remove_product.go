package command

import (
	"errors"
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/order/domain"
)

type RemoveProductCommand struct {
	OrderID   uint `json:"order_id"`
	ProductID uint `json:"product_id"`
	UserID    uint `json:"user_id"`
	IsAdmin   bool `json:"-"`
}

type RemoveProductHandler struct {
	orderRepo domain.OrderRepository
}

func NewRemoveProductHandler(orderRepo domain.OrderRepository) *RemoveProductHandler {
	return &RemoveProductHandler{orderRepo: orderRepo}
}

func (h *RemoveProductHandler) Handle(cmd RemoveProductCommand) (*domain.Order, error) {
	if cmd.OrderID == 0 || cmd.ProductID == 0 {
		return nil, fmt.Errorf("order id and product id are required")
	}

	order, err := h.orderRepo.FindByID(cmd.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	if order.UserID != cmd.UserID && !cmd.IsAdmin {
		return nil, domain.ErrNotOwner
	}

	order, err = h.orderRepo.RemoveProduct(cmd.OrderID, cmd.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrOrderPaid) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to remove product from order: %w", err)
	}
	return order, nil
}
