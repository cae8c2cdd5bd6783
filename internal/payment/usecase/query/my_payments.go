package query

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/payment/domain"
)

type MyPaymentsQuery struct {
	UserID uint `json:"user_id"`
	Limit  int  `json:"limit"`
	Offset int  `json:"offset"`
}

type MyPaymentsHandler struct {
	paymentRepo domain.PaymentRepository
}

func NewMyPaymentsHandler(paymentRepo domain.PaymentRepository) *MyPaymentsHandler {
	return &MyPaymentsHandler{paymentRepo: paymentRepo}
}

func (h *MyPaymentsHandler) Handle(q MyPaymentsQuery) ([]domain.Payment, error) {
	if q.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	payments, err := h.paymentRepo.FindByUser(q.UserID, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
