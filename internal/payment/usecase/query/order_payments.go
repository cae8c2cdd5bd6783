package query

import (
	"errors"
	"fmt"

	orderdomain "github.com/VCL-tt/BK-VenComp/internal/order/domain"
	"github.com/VCL-tt/BK-VenComp/internal/payment/domain"
)

type OrderPaymentsQuery struct {
	OrderID uint `json:"order_id"`
	UserID  uint `json:"user_id"`
	IsAdmin bool `json:"-"`
}

type OrderPaymentsHandler struct {
	paymentRepo domain.PaymentRepository
	orderRepo   orderdomain.OrderRepository
}

func NewOrderPaymentsHandler(paymentRepo domain.PaymentRepository, orderRepo orderdomain.OrderRepository) *OrderPaymentsHandler {
	return &OrderPaymentsHandler{paymentRepo: paymentRepo, orderRepo: orderRepo}
}

func (h *OrderPaymentsHandler) Handle(q OrderPaymentsQuery) ([]domain.Payment, error) {
	if q.OrderID == 0 {
		return nil, fmt.Errorf("order id is required")
	}

	order, err := h.orderRepo.FindByID(q.OrderID)
	if err != nil {
		if errors.Is(err, orderdomain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	if order.UserID != q.UserID && !q.IsAdmin {
		return nil, orderdomain.ErrNotOwner
	}

	payments, err := h.paymentRepo.FindByOrder(q.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order payments: %w", err)
	}
	return payments, nil
}
