package query

import (
	"fmt"

	"github.com/VCL-tt/BK-VenComp/internal/payment/domain"
)

// ListPaymentsQuery is the admin listing over all payments.
type ListPaymentsQuery struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type ListPaymentsHandler struct {
	paymentRepo domain.PaymentRepository
}

func NewListPaymentsHandler(paymentRepo domain.PaymentRepository) *ListPaymentsHandler {
	return &ListPaymentsHandler{paymentRepo: paymentRepo}
}

func (h *ListPaymentsHandler) Handle(q ListPaymentsQuery) ([]domain.Payment, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	payments, err := h.paymentRepo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
