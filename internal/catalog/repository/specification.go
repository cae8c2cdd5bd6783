package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

type GormSpecificationRepository struct {
	db *gorm.DB
}

func NewGormSpecificationRepository(db *gorm.DB) *GormSpecificationRepository {
	return &GormSpecificationRepository{db: db}
}

func (r *GormSpecificationRepository) Create(spec *domain.Specification) error {
	return r.db.Create(spec).Error
}

func (r *GormSpecificationRepository) FindByID(id uint) (*domain.Specification, error) {
	var spec domain.Specification
	err := r.db.First(&spec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSpecificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (r *GormSpecificationRepository) FindAll(limit, offset int) ([]domain.Specification, error) {
	var specs []domain.Specification
	err := r.db.Order("name ASC").Limit(limit).Offset(offset).Find(&specs).Error
	return specs, err
}

func (r *GormSpecificationRepository) SearchByName(name string, limit, offset int) ([]domain.Specification, error) {
	var specs []domain.Specification
	err := r.db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%").
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&specs).Error
	return specs, err
}

func (r *GormSpecificationRepository) SearchByBrandAndType(brand, specType string, limit, offset int) ([]domain.Specification, error) {
	var specs []domain.Specification
	err := r.db.Where("LOWER(brand) LIKE ? AND LOWER(spec_type) LIKE ?",
		"%"+strings.ToLower(brand)+"%", "%"+strings.ToLower(specType)+"%").
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&specs).Error
	return specs, err
}

func (r *GormSpecificationRepository) Update(spec *domain.Specification) error {
	result := r.db.Model(&domain.Specification{}).
		Where("id = ?", spec.ID).
		Updates(map[string]interface{}{
			"name":             spec.Name,
			"description":      spec.Description,
			"brand":            spec.Brand,
			"spec_type":        spec.SpecType,
			"additional_price": spec.AdditionalPrice,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSpecificationNotFound
	}
	return nil
}

// Delete removes a specification. Deletion is blocked while any product
// still links to it.
func (r *GormSpecificationRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var linked int64
		if err := tx.Model(&domain.ProductSpecification{}).
			Where("specification_id = ?", id).
			Count(&linked).Error; err != nil {
			return err
		}
		if linked > 0 {
			return domain.ErrSpecificationInUse
		}

		result := tx.Delete(&domain.Specification{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrSpecificationNotFound
		}
		return nil
	})
}

func (r *GormSpecificationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Specification{}).Count(&count).Error
	return count, err
}
