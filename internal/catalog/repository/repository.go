package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.Product{},
		&domain.Specification{},
		&domain.ProductSpecification{},
	)
}

// lockForUpdate takes a row lock on dialects that support it. SQLite (used in
// tests) serializes writers on its own, postgres needs the explicit lock.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Create persists a new product, linking the given specifications at
// quantity 1 and storing the resulting effective price
func (r *GormProductRepository) Create(product *domain.Product, specificationIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.Product
		err := tx.Where("name = ?", product.Name).First(&existing).Error
		if err == nil {
			return domain.ErrDuplicateName
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		product.Price = product.BasePrice
		if err := tx.Omit("Specifications").Create(product).Error; err != nil {
			return err
		}

		if len(specificationIDs) == 0 {
			return nil
		}

		var specs []domain.Specification
		if err := tx.Find(&specs, specificationIDs).Error; err != nil {
			return err
		}
		for _, spec := range specs {
			link := domain.ProductSpecification{
				ProductID:       product.ID,
				SpecificationID: spec.ID,
				Quantity:        1,
			}
			if err := tx.Omit("Specification").Create(&link).Error; err != nil {
				return err
			}
		}

		return r.recomputePrice(tx, product)
	})
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Preload("Specifications.Specification").First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindByName(name string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("name = ?", name).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Preload("Specifications.Specification").
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindByCategory(category string, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Preload("Specifications.Specification").
		Where("category = ?", category).
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Search(term string, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	pattern := "%" + strings.ToLower(term) + "%"
	err := r.db.Preload("Specifications.Specification").
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Filter(f domain.ProductFilter) ([]domain.Product, error) {
	q := r.db.Preload("Specifications.Specification").Order("name ASC")
	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}
	if f.InStock != nil && *f.InStock {
		q = q.Where("stock > 0")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var products []domain.Product
	err := q.Offset(f.Offset).Find(&products).Error
	return products, err
}

// Update edits product info. A base price change shifts the stored effective
// price by the same delta, keeping the specification surcharges intact.
func (r *GormProductRepository) Update(product *domain.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current domain.Product
		err := lockForUpdate(tx).First(&current, product.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		if err != nil {
			return err
		}

		if product.Name != current.Name {
			var existing domain.Product
			err := tx.Where("name = ? AND id <> ?", product.Name, product.ID).First(&existing).Error
			if err == nil {
				return domain.ErrDuplicateName
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		updates := map[string]interface{}{
			"name":         product.Name,
			"description":  product.Description,
			"base_price":   product.BasePrice,
			"price":        current.Price + (product.BasePrice - current.BasePrice),
			"stock":        product.Stock,
			"image":        product.Image,
			"category":     product.Category,
			"product_type": product.ProductType,
		}
		return tx.Model(&domain.Product{}).Where("id = ?", product.ID).Updates(updates).Error
	})
}

// Delete removes a product and cascades to its links, comments and favorites
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&domain.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrProductNotFound
		}

		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductSpecification{}).Error; err != nil {
			return err
		}
		// Comments and favorites are owned by the product and go with it.
		if err := tx.Exec("DELETE FROM comments WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM favorites WHERE product_id = ?", id).Error
	})
}

func (r *GormProductRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Count(&count).Error
	return count, err
}

func (r *GormProductRepository) UpdateStock(id uint, stock int) error {
	result := r.db.Model(&domain.Product{}).Where("id = ?", id).Update("stock", stock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DecrementStock lowers stock by the given amount, flooring at zero
func (r *GormProductRepository) DecrementStock(id uint, by int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var product domain.Product
		err := lockForUpdate(tx).First(&product, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		if err != nil {
			return err
		}

		stock := product.Stock - by
		if stock < 0 {
			stock = 0
		}
		return tx.Model(&domain.Product{}).Where("id = ?", id).Update("stock", stock).Error
	})
}

// AddSpecification links a specification to a product. If the pair already
// exists the link quantity is incremented instead. The stored price is
// recomputed from the persisted links in the same transaction.
func (r *GormProductRepository) AddSpecification(productID, specificationID uint, quantity int) (*domain.Product, error) {
	var product *domain.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var p domain.Product
		err := lockForUpdate(tx).First(&p, productID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		if err != nil {
			return err
		}

		var spec domain.Specification
		err = tx.First(&spec, specificationID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSpecificationNotFound
		}
		if err != nil {
			return err
		}

		var link domain.ProductSpecification
		err = tx.Where("product_id = ? AND specification_id = ?", productID, specificationID).
			First(&link).Error
		switch {
		case err == nil:
			err = tx.Model(&domain.ProductSpecification{}).
				Where("product_id = ? AND specification_id = ?", productID, specificationID).
				Update("quantity", link.Quantity+quantity).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			link = domain.ProductSpecification{
				ProductID:       productID,
				SpecificationID: specificationID,
				Quantity:        quantity,
			}
			err = tx.Omit("Specification").Create(&link).Error
		}
		if err != nil {
			return err
		}

		if err := r.recomputePrice(tx, &p); err != nil {
			return err
		}
		product = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(product.ID)
}

// RemoveSpecification deletes the link for the pair and subtracts its
// surcharge from the stored price
func (r *GormProductRepository) RemoveSpecification(productID, specificationID uint) (*domain.Product, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var p domain.Product
		err := lockForUpdate(tx).First(&p, productID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		if err != nil {
			return err
		}

		var link domain.ProductSpecification
		err = tx.Where("product_id = ? AND specification_id = ?", productID, specificationID).
			First(&link).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrLinkNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Where("product_id = ? AND specification_id = ?", productID, specificationID).
			Delete(&domain.ProductSpecification{}).Error; err != nil {
			return err
		}

		return r.recomputePrice(tx, &p)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(productID)
}

// ReplaceSpecifications clears all links and rebuilds them at quantity 1,
// recomputing the price from the base price upward
func (r *GormProductRepository) ReplaceSpecifications(productID uint, specificationIDs []uint) (*domain.Product, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var p domain.Product
		err := lockForUpdate(tx).First(&p, productID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", productID).
			Delete(&domain.ProductSpecification{}).Error; err != nil {
			return err
		}

		if len(specificationIDs) > 0 {
			var specs []domain.Specification
			if err := tx.Find(&specs, specificationIDs).Error; err != nil {
				return err
			}
			for _, spec := range specs {
				link := domain.ProductSpecification{
					ProductID:       productID,
					SpecificationID: spec.ID,
					Quantity:        1,
				}
				if err := tx.Omit("Specification").Create(&link).Error; err != nil {
					return err
				}
			}
		}

		return r.recomputePrice(tx, &p)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(productID)
}

// recomputePrice rewrites the stored effective price from the persisted
// links. Deriving from scratch instead of applying deltas keeps the stored
// value from drifting across repeated mutations.
func (r *GormProductRepository) recomputePrice(tx *gorm.DB, product *domain.Product) error {
	var links []domain.ProductSpecification
	if err := tx.Preload("Specification").
		Where("product_id = ?", product.ID).
		Find(&links).Error; err != nil {
		return err
	}

	product.Price = domain.EffectivePrice(product.BasePrice, links)
	return tx.Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Update("price", product.Price).Error
}
