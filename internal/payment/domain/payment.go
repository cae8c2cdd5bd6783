package domain

import (
	"errors"
	"time"
)

const StatusCompleted = "COMPLETED"

// Payment records a completed charge against an order. Amount is the sum of
// the order's product prices at the moment of payment; later catalog price
// changes never touch it.
type Payment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Method    string    `json:"method" gorm:"not null"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Status    string    `json:"status" gorm:"default:'COMPLETED'"`
	PaidAt    time.Time `json:"paid_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound     = errors.New("payment not found")
	ErrOrderPaid    = errors.New("order already paid")
	ErrInvalidInput = errors.New("invalid payment data")
)

// PaymentRepository persists payments. RecordPayment runs the whole
// checkout in one transaction: it computes the amount from the order's
// current product prices, stores the payment, and flips the order to PAID.
type PaymentRepository interface {
	RecordPayment(orderID, userID uint, method string) (*Payment, error)
	FindByID(id uint) (*Payment, error)
	FindByOrder(orderID uint) ([]Payment, error)
	FindByUser(userID uint, limit, offset int) ([]Payment, error)
	FindAll(limit, offset int) ([]Payment, error)
	Count() (int64, error)
}
