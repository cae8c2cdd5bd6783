package command

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/internal/order/domain"
	"github.com/VCL-tt/BK-VenComp/internal/order/repository"
)

func setupTest(t *testing.T) (*gorm.DB, domain.OrderRepository) {
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
	return db, repository.NewGormOrderRepository(db)
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64) *catalogdomain.Product {
	t.Helper()

	product := &catalogdomain.Product{Name: name, BasePrice: price, Price: price, Stock: 10}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

func TestAddProduct_OpensCartOnDemand(t *testing.T) {
	db, repo := setupTest(t)
	product := createProduct(t, db, "Office PC", 500)

	order, err := NewAddProductHandler(repo).Handle(AddProductCommand{
		UserID:    1,
		ProductID: product.ID,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if order.Status != domain.StatusCart {
		t.Errorf("expected status %s, got %s", domain.StatusCart, order.Status)
	}
	if len(order.Products) != 1 {
		t.Errorf("expected 1 product, got %d", len(order.Products))
	}

	// A second add reuses the same cart.
	again, err := NewAddProductHandler(repo).Handle(AddProductCommand{
		UserID:    1,
		ProductID: product.ID,
	})
	if err != nil {
		t.Fatalf("Handle() second call error = %v", err)
	}
	if again.ID != order.ID {
		t.Errorf("expected the same cart, got %d and %d", order.ID, again.ID)
	}
}

func TestRemoveProduct_OwnerOnly(t *testing.T) {
	db, repo := setupTest(t)
	product := createProduct(t, db, "Office PC", 500)

	order, err := NewAddProductHandler(repo).Handle(AddProductCommand{UserID: 1, ProductID: product.ID})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	_, err = NewRemoveProductHandler(repo).Handle(RemoveProductCommand{
		OrderID:   order.ID,
		ProductID: product.ID,
		UserID:    2,
	})
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	// Admins may act on any order.
	updated, err := NewRemoveProductHandler(repo).Handle(RemoveProductCommand{
		OrderID:   order.ID,
		ProductID: product.ID,
		UserID:    2,
		IsAdmin:   true,
	})
	if err != nil {
		t.Fatalf("Handle() as admin error = %v", err)
	}
	if len(updated.Products) != 0 {
		t.Errorf("expected empty product set, got %d", len(updated.Products))
	}
}

func TestDeleteOrder_PaidRejected(t *testing.T) {
	db, repo := setupTest(t)
	product := createProduct(t, db, "Office PC", 500)

	order, err := NewAddProductHandler(repo).Handle(AddProductCommand{UserID: 1, ProductID: product.ID})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if err := db.Model(&domain.Order{}).Where("id = ?", order.ID).
		Update("status", domain.StatusPaid).Error; err != nil {
		t.Fatalf("failed to mark order paid: %v", err)
	}

	err = NewDeleteOrderHandler(repo).Handle(DeleteOrderCommand{OrderID: order.ID, UserID: 1})
	if !errors.Is(err, domain.ErrOrderPaid) {
		t.Fatalf("expected ErrOrderPaid, got %v", err)
	}
}
