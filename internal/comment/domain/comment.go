package domain

import (
	"errors"
	"time"
)

// Comment is a user's review text on a product. Only the author may edit
// or delete it.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Username  string    `json:"username"`
	Body      string    `json:"body" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound  = errors.New("comment not found")
	ErrNotAuthor = errors.New("only the author can modify this comment")
)

type CommentRepository interface {
	Create(comment *Comment) error
	FindByID(id uint) (*Comment, error)
	FindByProduct(productID uint, limit, offset int) ([]Comment, error)
	Update(comment *Comment) error
	Delete(id uint) error
	Count() (int64, error)
}
