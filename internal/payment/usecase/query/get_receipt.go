package query

import (
	"errors"
	"fmt"

	catalogdomain "github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	orderdomain "github.com/VCL-tt/BK-VenComp/internal/order/domain"
	"github.com/VCL-tt/BK-VenComp/internal/payment/domain"
	"github.com/VCL-tt/BK-VenComp/internal/payment/receipt"
)

type GetReceiptQuery struct {
	PaymentID uint   `json:"payment_id"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"-"`
}

type GetReceiptHandler struct {
	paymentRepo domain.PaymentRepository
	orderRepo   orderdomain.OrderRepository
	productRepo catalogdomain.ProductRepository
	renderer    receipt.Renderer
}

func NewGetReceiptHandler(
	paymentRepo domain.PaymentRepository,
	orderRepo orderdomain.OrderRepository,
	productRepo catalogdomain.ProductRepository,
	renderer receipt.Renderer,
) *GetReceiptHandler {
	return &GetReceiptHandler{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		renderer:    renderer,
	}
}

// Handle renders the receipt for a payment. Items are listed at their
// current catalog prices; the total is the amount captured at checkout.
func (h *GetReceiptHandler) Handle(q GetReceiptQuery) ([]byte, string, error) {
	if q.PaymentID == 0 {
		return nil, "", fmt.Errorf("payment id is required")
	}

	payment, err := h.paymentRepo.FindByID(q.PaymentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to get payment: %w", err)
	}
	if payment.UserID != q.UserID && !q.IsAdmin {
		return nil, "", domain.ErrNotFound
	}

	order, err := h.orderRepo.FindByID(payment.OrderID)
	if err != nil && !errors.Is(err, orderdomain.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to find order: %w", err)
	}

	var items []receipt.Item
	if order != nil {
		for _, op := range order.Products {
			product, err := h.productRepo.FindByID(op.ProductID)
			if err != nil {
				continue
			}
			items = append(items, receipt.Item{Name: product.Name, Price: product.Price})
		}
	}

	body, contentType, err := h.renderer.Render(receipt.Receipt{
		PaymentID: payment.ID,
		OrderID:   payment.OrderID,
		Username:  q.Username,
		Method:    payment.Method,
		Items:     items,
		Amount:    payment.Amount,
		PaidAt:    payment.PaidAt,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to render receipt: %w", err)
	}
	return body, contentType, nil
}
