package domain

import (
	"errors"
	"time"
)

// Favorite marks a product as saved by a user, at most once per pair.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_fav_user_product;not null"`
	ProductID uint      `json:"product_id" gorm:"uniqueIndex:idx_fav_user_product;not null"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrDuplicate = errors.New("product already in favorites")
	ErrNotFound  = errors.New("favorite not found")
)

// FavoriteItem is the listing projection: the favorite plus a snapshot of
// the product it points to.
type FavoriteItem struct {
	FavoriteID uint      `json:"favorite_id"`
	ProductID  uint      `json:"product_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Image      string    `json:"image"`
	Category   string    `json:"category"`
	AddedAt    time.Time `json:"added_at"`
}

type FavoriteRepository interface {
	Add(userID, productID uint) (*Favorite, error)
	Remove(userID, productID uint) error
	ListByUser(userID uint, limit, offset int) ([]FavoriteItem, error)
	Count() (int64, error)
}
