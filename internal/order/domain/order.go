package domain

import (
	"errors"
	"time"
)

// Order statuses. CART orders are mutable, PAID orders are terminal and
// their product set is immutable.
const (
	StatusCart = "CART"
	StatusPaid = "PAID"
)

// Order groups a user, a mutable set of product references and a status.
// The total is always computed from current product prices on read, never
// stored.
type Order struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Status    string    `json:"status" gorm:"not null;default:'CART'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Products []OrderProduct `json:"products,omitempty" gorm:"foreignKey:OrderID"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// IsPaid reports whether the order has been finalized
func (o *Order) IsPaid() bool {
	return o.Status == StatusPaid
}

// OrderProduct is a membership row in an order's product set. The composite
// primary key gives set semantics: a product is either in the order or not.
type OrderProduct struct {
	OrderID   uint `json:"order_id" gorm:"primaryKey"`
	ProductID uint `json:"product_id" gorm:"primaryKey"`
}

// TableName specifies the table name
func (OrderProduct) TableName() string {
	return "order_products"
}

var (
	// ErrNotFound is returned when the referenced order does not exist
	ErrNotFound = errors.New("order not found")
	// ErrOrderPaid is returned on any attempt to mutate a PAID order's product set
	ErrOrderPaid = errors.New("order is already paid")
	// ErrNotOwner is returned when acting on an order owned by another user
	ErrNotOwner = errors.New("order belongs to another user")
)

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	Create(userID uint, productIDs []uint) (*Order, error)
	FindByID(id uint) (*Order, error)
	FindByUser(userID uint, limit, offset int) ([]Order, error)
	// ActiveForUser returns the user's CART order, creating an empty one if
	// none exists. At most one CART order per user.
	ActiveForUser(userID uint) (*Order, error)
	AddProduct(orderID, productID uint) (*Order, error)
	RemoveProduct(orderID, productID uint) (*Order, error)
	// Total computes the sum of the current prices of the distinct products
	// in the order's set
	Total(orderID uint) (float64, error)
	Delete(id uint) error
	Count() (int64, error)
}
