package query

import (
	"errors"
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/payment/domain"
)

type GetPaymentQuery struct {
	PaymentID uint `json:"payment_id"`
	UserID    uint `json:"user_id"`
	IsAdmin   bool `json:"-"`
}

type GetPaymentHandler struct {
	paymentRepo domain.PaymentRepository
}

func NewGetPaymentHandler(paymentRepo domain.PaymentRepository) *GetPaymentHandler {
	return &GetPaymentHandler{paymentRepo: paymentRepo}
}

func (h *GetPaymentHandler) Handle(q GetPaymentQuery) (*domain.Payment, error) {
	if q.PaymentID == 0 {
		return nil, fmt.Errorf("payment id is required")
	}

	payment, err := h.paymentRepo.FindByID(q.PaymentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if payment.UserID != q.UserID && !q.IsAdmin {
		return nil, domain.ErrNotFound
	}
	return payment, nil
}
