package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a sellable item. Price is the stored effective price:
// BasePrice plus the weighted sum of the linked specification prices. It is
// recomputed and persisted on every link mutation, never derived at read time.
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"uniqueIndex;not null"`
	Description string         `json:"description"`
	BasePrice   float64        `json:"base_price" gorm:"not null"`
	Price       float64        `json:"price" gorm:"not null"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	Image       string         `json:"image"`
	Category    string         `json:"category"`
	ProductType string         `json:"product_type"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Specifications []ProductSpecification `json:"specifications,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsAvailable checks if the product is in stock
func (p *Product) IsAvailable() bool {
	return p.Stock > 0
}

// ProductSpecification links a product to a specification with a per-pair
// quantity. At most one row exists per (product, specification) pair; adding
// an existing pair increments the quantity instead of duplicating.
type ProductSpecification struct {
	ProductID       uint `json:"product_id" gorm:"primaryKey"`
	SpecificationID uint `json:"specification_id" gorm:"primaryKey"`
	Quantity        int  `json:"quantity" gorm:"not null;default:1"`

	Specification Specification `json:"specification" gorm:"foreignKey:SpecificationID"`
}

// TableName specifies the table name
func (ProductSpecification) TableName() string {
	return "product_specifications"
}

// EffectivePrice computes base price plus the weighted sum of the linked
// specification prices
func EffectivePrice(basePrice float64, links []ProductSpecification) float64 {
	price := basePrice
	for _, link := range links {
		price += link.Specification.AdditionalPrice * float64(link.Quantity)
	}
	return price
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product, specificationIDs []uint) error
	FindByID(id uint) (*Product, error)
	FindByName(name string) (*Product, error)
	FindAll(limit, offset int) ([]Product, error)
	FindByCategory(category string, limit, offset int) ([]Product, error)
	Search(term string, limit, offset int) ([]Product, error)
	Filter(f ProductFilter) ([]Product, error)
	Update(product *Product) error
	Delete(id uint) error
	Count() (int64, error)
	UpdateStock(id uint, stock int) error
	DecrementStock(id uint, by int) error

	AddSpecification(productID, specificationID uint, quantity int) (*Product, error)
	RemoveSpecification(productID, specificationID uint) (*Product, error)
	ReplaceSpecifications(productID uint, specificationIDs []uint) (*Product, error)
}

// ProductFilter holds optional product filtering criteria
type ProductFilter struct {
	PriceMin *float64
	PriceMax *float64
	InStock  *bool
	Limit    int
	Offset   int
}
