package kafka

import "time"

// OrderPaidEvent is emitted after a checkout completes. Stock workers
// consume it to decrement inventory for every product in the order.
type OrderPaidEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OrderID    uint      `json:"order_id"`
	PaymentID  uint      `json:"payment_id"`
	UserID     uint      `json:"user_id"`
	ProductIDs []uint    `json:"product_ids"`
	Amount     float64   `json:"amount"`
	Method     string    `json:"method"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderPaid = "order.paid"
)

// Kafka topics
const (
	TopicOrderPaid = "order-paid"
)
