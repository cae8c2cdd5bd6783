package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	orderdomain "github.com/VCL-tt/BK-VenComp/internal/order/domain"
	"github.com/VCL-tt/BK-VenComp/internal/payment/domain"
)

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Payment{})
}

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// RecordPayment charges an order. The order row is locked for the whole
// transaction so a concurrent checkout of the same order either sees PAID
// and fails, or waits and then fails. The amount is read from the products'
// current prices inside the same transaction.
func (r *GormPaymentRepository) RecordPayment(orderID, userID uint, method string) (*domain.Payment, error) {
	var payment *domain.Payment

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var order orderdomain.Order
		err := lockForUpdate(tx).First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return orderdomain.ErrNotFound
		}
		if err != nil {
			return err
		}
		if order.Status == orderdomain.StatusPaid {
			return domain.ErrOrderPaid
		}

		// An order with no products pays 0; the cart still closes.
		var amount float64
		err = tx.Raw(
			`SELECT COALESCE(SUM(p.price), 0)
			 FROM order_products op
			 JOIN products p ON p.id = op.product_id AND p.deleted_at IS NULL
			 WHERE op.order_id = ?`, orderID,
		).Scan(&amount).Error
		if err != nil {
			return err
		}

		now := time.Now()
		payment = &domain.Payment{
			OrderID: orderID,
			UserID:  userID,
			Method:  method,
			Amount:  amount,
			Status:  domain.StatusCompleted,
			PaidAt:  now,
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		return tx.Model(&orderdomain.Order{}).
			Where("id = ?", orderID).
			Update("status", orderdomain.StatusPaid).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *GormPaymentRepository) FindByID(id uint) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.First(&payment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepository) FindByOrder(orderID uint) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.Where("order_id = ?", orderID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *GormPaymentRepository) FindByUser(userID uint, limit, offset int) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&payments).Error
	return payments, err
}

func (r *GormPaymentRepository) FindAll(limit, offset int) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error
	return payments, err
}

func (r *GormPaymentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Payment{}).Count(&count).Error
	return count, err
}
