package command

import (
	"errors"
	"fmt"

	catalogdomain "github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/internal/order/domain"
)

// AddProductCommand puts a product into the caller's active cart, opening a
// new cart when the user has none.
type AddProductCommand struct {
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
}

type AddProductHandler struct {
	orderRepo domain.OrderRepository
}

func NewAddProductHandler(orderRepo domain.OrderRepository) *AddProductHandler {
	return &AddProductHandler{orderRepo: orderRepo}
}

func (h *AddProductHandler) Handle(cmd AddProductCommand) (*domain.Order, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product id is required")
	}

	cart, err := h.orderRepo.ActiveForUser(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart: %w", err)
	}

	order, err := h.orderRepo.AddProduct(cart.ID, cmd.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderPaid) || errors.Is(err, catalogdomain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add product to order: %w", err)
	}
	return order, nil
}
