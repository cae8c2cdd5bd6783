package repository

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/internal/favorite/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&catalogdomain.Product{}, &domain.Favorite{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64) *catalogdomain.Product {
	t.Helper()

	product := &catalogdomain.Product{Name: name, BasePrice: price, Price: price}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

func TestAdd_DuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFavoriteRepository(db)

	product := createProduct(t, db, "Office PC", 500)

	if _, err := repo.Add(1, product.ID); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := repo.Add(1, product.ID); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// A different user may favorite the same product.
	if _, err := repo.Add(2, product.ID); err != nil {
		t.Fatalf("Add() for second user error = %v", err)
	}
}

func TestAdd_UnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFavoriteRepository(db)

	if _, err := repo.Add(1, 999); !errors.Is(err, catalogdomain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestRemove_Absent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFavoriteRepository(db)

	if err := repo.Remove(1, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByUser_JoinsCatalog(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFavoriteRepository(db)

	pc := createProduct(t, db, "Office PC", 500)
	kb := createProduct(t, db, "Keyboard", 50)

	if _, err := repo.Add(1, pc.ID); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := repo.Add(1, kb.ID); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := repo.Add(2, kb.ID); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	items, err := repo.ListByUser(1, 50, 0)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(items))
	}
	for _, item := range items {
		if item.Name == "" || item.Price == 0 {
			t.Errorf("expected product snapshot in listing, got %+v", item)
		}
	}
}

func TestListByUser_SkipsDeletedProducts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFavoriteRepository(db)

	product := createProduct(t, db, "Office PC", 500)
	if _, err := repo.Add(1, product.ID); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := db.Delete(&catalogdomain.Product{}, product.ID).Error; err != nil {
		t.Fatalf("failed to soft delete product: %v", err)
	}

	items, err := repo.ListByUser(1, 50, 0)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected deleted product excluded, got %d items", len(items))
	}
}
