package repository

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	orderdomain "github.com/VCL-tt/BK-VenComp/internal/order/domain"
	orderrepo "github.com/VCL-tt/BK-VenComp/internal/order/repository"
	"github.com/VCL-tt/BK-VenComp/internal/payment/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&catalogdomain.Product{},
		&orderdomain.Order{},
		&orderdomain.OrderProduct{},
		&domain.Payment{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// cartWithProducts opens a cart for user 1 holding the given prices.
func cartWithProducts(t *testing.T, db *gorm.DB, prices ...float64) *orderdomain.Order {
	t.Helper()

	orders := orderrepo.NewGormOrderRepository(db)
	cart, err := orders.ActiveForUser(1)
	if err != nil {
		t.Fatalf("ActiveForUser() error = %v", err)
	}

	for i, price := range prices {
		product := &catalogdomain.Product{
			Name:      string(rune('A' + i)),
			BasePrice: price,
			Price:     price,
			Stock:     5,
		}
		if err := db.Create(product).Error; err != nil {
			t.Fatalf("failed to create product: %v", err)
		}
		if _, err := orders.AddProduct(cart.ID, product.ID); err != nil {
			t.Fatalf("AddProduct() error = %v", err)
		}
	}
	return cart
}

func TestRecordPayment_ComputesAmountAndFinalizesOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)

	cart := cartWithProducts(t, db, 100, 50)

	payment, err := repo.RecordPayment(cart.ID, 1, "card")
	if err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}
	if payment.Amount != 150 {
		t.Errorf("expected amount 150, got %v", payment.Amount)
	}
	if payment.Status != domain.StatusCompleted {
		t.Errorf("expected status %s, got %s", domain.StatusCompleted, payment.Status)
	}

	var order orderdomain.Order
	if err := db.First(&order, cart.ID).Error; err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if order.Status != orderdomain.StatusPaid {
		t.Errorf("expected order status %s, got %s", orderdomain.StatusPaid, order.Status)
	}
}

func TestRecordPayment_SecondPaymentRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)

	cart := cartWithProducts(t, db, 100)

	if _, err := repo.RecordPayment(cart.ID, 1, "card"); err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}

	_, err := repo.RecordPayment(cart.ID, 1, "card")
	if !errors.Is(err, domain.ErrOrderPaid) {
		t.Fatalf("expected ErrOrderPaid, got %v", err)
	}

	var count int64
	db.Model(&domain.Payment{}).Where("order_id = ?", cart.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected a single payment row, got %d", count)
	}
}

func TestRecordPayment_EmptyOrderPaysZero(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)

	cart := cartWithProducts(t, db)

	payment, err := repo.RecordPayment(cart.ID, 1, "card")
	if err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}
	if payment.Amount != 0 {
		t.Errorf("Amount = %v, want 0", payment.Amount)
	}

	var order orderdomain.Order
	if err := db.First(&order, cart.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if order.Status != orderdomain.StatusPaid {
		t.Errorf("order status = %q, want %q", order.Status, orderdomain.StatusPaid)
	}
}

func TestRecordPayment_UnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)

	_, err := repo.RecordPayment(999, 1, "card")
	if !errors.Is(err, orderdomain.ErrNotFound) {
		t.Fatalf("expected order ErrNotFound, got %v", err)
	}
}

func TestRecordPayment_AmountImmuneToLaterPriceChanges(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)

	cart := cartWithProducts(t, db, 200)

	payment, err := repo.RecordPayment(cart.ID, 1, "card")
	if err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}

	if err := db.Model(&catalogdomain.Product{}).
		Where("1 = 1").Update("price", 999).Error; err != nil {
		t.Fatalf("failed to update price: %v", err)
	}

	found, err := repo.FindByID(payment.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Amount != 200 {
		t.Errorf("expected recorded amount 200, got %v", found.Amount)
	}
}
