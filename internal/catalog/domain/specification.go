package domain

import (
	"time"

	"gorm.io/gorm"
)

// Specification is an optional add-on component (RAM module, CPU, GPU)
// attachable to a product at a per-unit additional price
type Specification struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name" gorm:"not null"`
	Description     string         `json:"description"`
	Brand           string         `json:"brand"`
	SpecType        string         `json:"spec_type"`
	AdditionalPrice float64        `json:"additional_price" gorm:"not null"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Specification) TableName() string {
	return "specifications"
}

// SpecificationRepository defines the contract for specification data access
type SpecificationRepository interface {
	Create(spec *Specification) error
	FindByID(id uint) (*Specification, error)
	FindAll(limit, offset int) ([]Specification, error)
	SearchByName(name string, limit, offset int) ([]Specification, error)
	SearchByBrandAndType(brand, specType string, limit, offset int) ([]Specification, error)
	Update(spec *Specification) error
	Delete(id uint) error
	Count() (int64, error)
}
