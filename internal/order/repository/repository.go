package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogdomain "github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/internal/order/domain"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{}, &domain.OrderProduct{})
}

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Create opens a new CART order, linking any of the given products that
// exist. Unknown product ids are skipped.
func (r *GormOrderRepository) Create(userID uint, productIDs []uint) (*domain.Order, error) {
	order := &domain.Order{
		UserID: userID,
		Status: domain.StatusCart,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Products").Create(order).Error; err != nil {
			return err
		}

		if len(productIDs) == 0 {
			return nil
		}

		var products []catalogdomain.Product
		if err := tx.Find(&products, productIDs).Error; err != nil {
			return err
		}
		for _, p := range products {
			link := domain.OrderProduct{OrderID: order.ID, ProductID: p.ID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(order.ID)
}

func (r *GormOrderRepository) FindByID(id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Preload("Products").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByUser(userID uint, limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Preload("Products").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, err
}

// ActiveForUser returns the user's CART order, creating one if absent. The
// lookup and the insert run in one transaction with the user's cart rows
// locked, so two racing calls cannot both create.
func (r *GormOrderRepository) ActiveForUser(userID uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			Where("user_id = ? AND status = ?", userID, domain.StatusCart).
			Order("created_at ASC").
			First(&order).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		order = domain.Order{UserID: userID, Status: domain.StatusCart}
		return tx.Omit("Products").Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(order.ID)
}

// AddProduct puts a product into the order's set. Adding an already-present
// product is a no-op. Fails on PAID orders: the product set of a finalized
// order is immutable.
func (r *GormOrderRepository) AddProduct(orderID, productID uint) (*domain.Order, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		err := lockForUpdate(tx).First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		if order.Status == domain.StatusPaid {
			return domain.ErrOrderPaid
		}

		var product catalogdomain.Product
		err = tx.First(&product, productID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalogdomain.ErrProductNotFound
		}
		if err != nil {
			return err
		}

		link := domain.OrderProduct{OrderID: orderID, ProductID: productID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(orderID)
}

// RemoveProduct discards a product from the order's set, a no-op if absent.
// Fails on PAID orders.
func (r *GormOrderRepository) RemoveProduct(orderID, productID uint) (*domain.Order, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		err := lockForUpdate(tx).First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		if order.Status == domain.StatusPaid {
			return domain.ErrOrderPaid
		}

		return tx.Where("order_id = ? AND product_id = ?", orderID, productID).
			Delete(&domain.OrderProduct{}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(orderID)
}

// Total sums the current prices of the order's products
func (r *GormOrderRepository) Total(orderID uint) (float64, error) {
	var order domain.Order
	err := r.db.First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	var total float64
	err = r.db.Raw(
		`SELECT COALESCE(SUM(p.price), 0)
		 FROM order_products op
		 JOIN products p ON p.id = op.product_id AND p.deleted_at IS NULL
		 WHERE op.order_id = ?`, orderID,
	).Scan(&total).Error
	return total, err
}

func (r *GormOrderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&domain.Order{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Where("order_id = ?", id).Delete(&domain.OrderProduct{}).Error
	})
}

func (r *GormOrderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Order{}).Count(&count).Error
	return count, err
}
