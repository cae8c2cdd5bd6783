package repository

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/internal/order/domain"
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
		&domain.Order{},
		&domain.OrderProduct{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64) *catalogdomain.Product {
	t.Helper()

	product := &catalogdomain.Product{Name: name, BasePrice: price, Price: price, Stock: 10}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

func TestActiveForUser_SingleCart(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)

	first, err := repo.ActiveForUser(1)
	if err != nil {
		t.Fatalf("ActiveForUser() error = %v", err)
	}
	if first.Status != domain.StatusCart {
		t.Errorf("expected status %s, got %s", domain.StatusCart, first.Status)
	}

	second, err := repo.ActiveForUser(1)
	if err != nil {
		t.Fatalf("ActiveForUser() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected the same cart, got %d and %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&domain.Order{}).Where("user_id = ? AND status = ?", 1, domain.StatusCart).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 open cart, got %d", count)
	}
}

func TestAddProduct_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)

	product := createProduct(t, db, "Office PC", 500)
	cart, err := repo.ActiveForUser(1)
	if err != nil {
		t.Fatalf("ActiveForUser() error = %v", err)
	}

	if _, err := repo.AddProduct(cart.ID, product.ID); err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}
	order, err := repo.AddProduct(cart.ID, product.ID)
	if err != nil {
		t.Fatalf("AddProduct() second call error = %v", err)
	}

	if len(order.Products) != 1 {
		t.Errorf("expected product set of 1, got %d", len(order.Products))
	}
}

func TestAddProduct_UnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)

	cart, err := repo.ActiveForUser(1)
	if err != nil {
		t.Fatalf("ActiveForUser() error = %v", err)
	}

	_, err = repo.AddProduct(cart.ID, 999)
	if !errors.Is(err, catalogdomain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestAddRemoveProduct_PaidOrderRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)

	product := createProduct(t, db, "Office PC", 500)
	cart, err := repo.ActiveForUser(1)
	if err != nil {
		t.Fatalf("ActiveForUser() error = %v", err)
	}
	if _, err := repo.AddProduct(cart.ID, product.ID); err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}

	if err := db.Model(&domain.Order{}).Where("id = ?", cart.ID).
		Update("status", domain.StatusPaid).Error; err != nil {
		t.Fatalf("failed to mark order paid: %v", err)
	}

	other := createProduct(t, db, "Gamer PC", 900)
	if _, err := repo.AddProduct(cart.ID, other.ID); !errors.Is(err, domain.ErrOrderPaid) {
		t.Fatalf("expected ErrOrderPaid on add, got %v", err)
	}
	if _, err := repo.RemoveProduct(cart.ID, product.ID); !errors.Is(err, domain.ErrOrderPaid) {
		t.Fatalf("expected ErrOrderPaid on remove, got %v", err)
	}
}

func TestRemoveProduct_AbsentIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)

	cart, err := repo.ActiveForUser(1)
	if err != nil {
		t.Fatalf("ActiveForUser() error = %v", err)
	}

	order, err := repo.RemoveProduct(cart.ID, 42)
	if err != nil {
		t.Fatalf("RemoveProduct() error = %v", err)
	}
	if len(order.Products) != 0 {
		t.Errorf("expected empty product set, got %d", len(order.Products))
	}
}

func TestTotal_SumsCurrentPrices(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)

	a := createProduct(t, db, "Office PC", 100)
	b := createProduct(t, db, "Keyboard", 50)

	cart, err := repo.ActiveForUser(1)
	if err != nil {
		t.Fatalf("ActiveForUser() error = %v", err)
	}
	if _, err := repo.AddProduct(cart.ID, a.ID); err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}
	if _, err := repo.AddProduct(cart.ID, b.ID); err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}

	total, err := repo.Total(cart.ID)
	if err != nil {
		t.Fatalf("Total() error = %v", err)
	}
	if total != 150 {
		t.Errorf("expected total 150, got %v", total)
	}

	// Price changes flow into open order totals.
	if err := db.Model(&catalogdomain.Product{}).Where("id = ?", a.ID).
		Update("price", 120).Error; err != nil {
		t.Fatalf("failed to update price: %v", err)
	}

	total, err = repo.Total(cart.ID)
	if err != nil {
		t.Fatalf("Total() error = %v", err)
	}
	if total != 170 {
		t.Errorf("expected total 170 after price change, got %v", total)
	}
}

func TestDelete_RemovesOrderAndLinks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)

	product := createProduct(t, db, "Office PC", 500)
	cart, err := repo.ActiveForUser(1)
	if err != nil {
		t.Fatalf("ActiveForUser() error = %v", err)
	}
	if _, err := repo.AddProduct(cart.ID, product.ID); err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}

	if err := repo.Delete(cart.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.FindByID(cart.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	var links int64
	db.Model(&domain.OrderProduct{}).Where("order_id = ?", cart.ID).Count(&links)
	if links != 0 {
		t.Errorf("expected links removed, got %d", links)
	}
}
