package command

import (
	"errors"
	"fmt"

	orderdomain "github.com/VCL-tt/BK-VenComp/internal/order/domain"
	"github.com/VCL-tt/BK-VenComp/internal/payment/domain"
)

// RecordPaymentCommand checks out an order: the caller pays for their own
// order, the amount is computed from the current product prices, and the
// order is finalized as PAID.
type RecordPaymentCommand struct {
	OrderID uint   `json:"order_id"`
	UserID  uint   `json:"user_id"`
	Method  string `json:"method"`
	IsAdmin bool   `json:"-"`
}

type RecordPaymentHandler struct {
	paymentRepo domain.PaymentRepository
	orderRepo   orderdomain.OrderRepository
}

func NewRecordPaymentHandler(paymentRepo domain.PaymentRepository, orderRepo orderdomain.OrderRepository) *RecordPaymentHandler {
	return &RecordPaymentHandler{paymentRepo: paymentRepo, orderRepo: orderRepo}
}

func (h *RecordPaymentHandler) Handle(cmd RecordPaymentCommand) (*domain.Payment, error) {
	if cmd.OrderID == 0 {
		return nil, fmt.Errorf("%w: order id is required", domain.ErrInvalidInput)
	}
	if cmd.Method == "" {
		return nil, fmt.Errorf("%w: payment method is required", domain.ErrInvalidInput)
	}

	order, err := h.orderRepo.FindByID(cmd.OrderID)
	if err != nil {
		if errors.Is(err, orderdomain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	if order.UserID != cmd.UserID && !cmd.IsAdmin {
		return nil, orderdomain.ErrNotOwner
	}

	payment, err := h.paymentRepo.RecordPayment(cmd.OrderID, order.UserID, cmd.Method)
	if err != nil {
		if errors.Is(err, domain.ErrOrderPaid) || errors.Is(err, orderdomain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return payment, nil
}
