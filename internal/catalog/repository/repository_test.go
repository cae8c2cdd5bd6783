package repository

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	commentdomain "github.com/VCL-tt/BK-VenComp/internal/comment/domain"
	favoritedomain "github.com/VCL-tt/BK-VenComp/internal/favorite/domain"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.Product{},
		&domain.Specification{},
		&domain.ProductSpecification{},
		&commentdomain.Comment{},
		&favoritedomain.Favorite{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createProduct(t *testing.T, repo *GormProductRepository, name string, basePrice float64, specIDs []uint) *domain.Product {
	t.Helper()

	product := &domain.Product{
		Name:      name,
		BasePrice: basePrice,
		Stock:     10,
		Category:  "desktop",
	}
	if err := repo.Create(product, specIDs); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return product
}

func createSpec(t *testing.T, db *gorm.DB, name string, price float64) *domain.Specification {
	t.Helper()

	spec := &domain.Specification{Name: name, Brand: "Kingston", SpecType: "RAM", AdditionalPrice: price}
	if err := db.Create(spec).Error; err != nil {
		t.Fatalf("failed to create specification: %v", err)
	}
	return spec
}

func TestCreate_DuplicateName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	createProduct(t, repo, "Gaming Tower", 500, nil)

	err := repo.Create(&domain.Product{Name: "Gaming Tower", BasePrice: 700}, nil)
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestCreate_LinksSpecificationsAtQuantityOne(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	ram := createSpec(t, db, "16GB DDR4", 40)
	ssd := createSpec(t, db, "1TB NVMe", 80)

	product := createProduct(t, repo, "Workstation", 500, []uint{ram.ID, ssd.ID})

	found, err := repo.FindByID(product.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if len(found.Specifications) != 2 {
		t.Fatalf("expected 2 links, got %d", len(found.Specifications))
	}
	for _, link := range found.Specifications {
		if link.Quantity != 1 {
			t.Errorf("expected quantity 1, got %d", link.Quantity)
		}
	}
	if found.Price != 620 {
		t.Errorf("expected price 620, got %v", found.Price)
	}
}

func TestAddSpecification_PriceRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	ram := createSpec(t, db, "8GB DDR4", 20)
	product := createProduct(t, repo, "Office PC", 500, nil)

	updated, err := repo.AddSpecification(product.ID, ram.ID, 2)
	if err != nil {
		t.Fatalf("AddSpecification() error = %v", err)
	}
	if updated.Price != 540 {
		t.Errorf("expected price 540 after add, got %v", updated.Price)
	}

	updated, err = repo.RemoveSpecification(product.ID, ram.ID)
	if err != nil {
		t.Fatalf("RemoveSpecification() error = %v", err)
	}
	if updated.Price != 500 {
		t.Errorf("expected price 500 after remove, got %v", updated.Price)
	}
}

func TestAddSpecification_ExistingPairIncrementsQuantity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	ram := createSpec(t, db, "8GB DDR4", 20)
	product := createProduct(t, repo, "Office PC", 500, nil)

	if _, err := repo.AddSpecification(product.ID, ram.ID, 1); err != nil {
		t.Fatalf("AddSpecification() error = %v", err)
	}
	updated, err := repo.AddSpecification(product.ID, ram.ID, 1)
	if err != nil {
		t.Fatalf("AddSpecification() error = %v", err)
	}

	if len(updated.Specifications) != 1 {
		t.Fatalf("expected a single link, got %d", len(updated.Specifications))
	}
	if updated.Specifications[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", updated.Specifications[0].Quantity)
	}
	if updated.Price != 540 {
		t.Errorf("expected price 540, got %v", updated.Price)
	}
}

func TestRemoveSpecification_NotLinked(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	ram := createSpec(t, db, "8GB DDR4", 20)
	product := createProduct(t, repo, "Office PC", 500, nil)

	_, err := repo.RemoveSpecification(product.ID, ram.ID)
	if !errors.Is(err, domain.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestReplaceSpecifications_RebuildsAtQuantityOne(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	ram := createSpec(t, db, "8GB DDR4", 20)
	gpu := createSpec(t, db, "RTX 4060", 300)
	product := createProduct(t, repo, "Gamer PC", 500, nil)

	if _, err := repo.AddSpecification(product.ID, ram.ID, 3); err != nil {
		t.Fatalf("AddSpecification() error = %v", err)
	}

	updated, err := repo.ReplaceSpecifications(product.ID, []uint{ram.ID, gpu.ID})
	if err != nil {
		t.Fatalf("ReplaceSpecifications() error = %v", err)
	}
	if len(updated.Specifications) != 2 {
		t.Fatalf("expected 2 links, got %d", len(updated.Specifications))
	}
	for _, link := range updated.Specifications {
		if link.Quantity != 1 {
			t.Errorf("expected quantity 1 after replace, got %d", link.Quantity)
		}
	}
	if updated.Price != 820 {
		t.Errorf("expected price 820, got %v", updated.Price)
	}
}

func TestUpdate_BasePriceShiftsStoredPrice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	ram := createSpec(t, db, "8GB DDR4", 20)
	product := createProduct(t, repo, "Office PC", 500, []uint{ram.ID})

	product.BasePrice = 600
	if err := repo.Update(product); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := repo.FindByID(product.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Price != 620 {
		t.Errorf("expected price 620 (new base plus surcharge), got %v", found.Price)
	}
}

func TestDelete_CascadesCommentsAndFavorites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	product := createProduct(t, repo, "Office PC", 500, nil)

	if err := db.Create(&commentdomain.Comment{ProductID: product.ID, UserID: 1, Body: "great"}).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	if err := db.Create(&favoritedomain.Favorite{ProductID: product.ID, UserID: 1}).Error; err != nil {
		t.Fatalf("failed to create favorite: %v", err)
	}

	if err := repo.Delete(product.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var comments, favorites int64
	db.Model(&commentdomain.Comment{}).Where("product_id = ?", product.ID).Count(&comments)
	db.Model(&favoritedomain.Favorite{}).Where("product_id = ?", product.ID).Count(&favorites)
	if comments != 0 || favorites != 0 {
		t.Errorf("expected cascade delete, got %d comments and %d favorites", comments, favorites)
	}
}

func TestDecrementStock_FloorsAtZero(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	product := createProduct(t, repo, "Office PC", 500, nil)

	if err := repo.DecrementStock(product.ID, 99); err != nil {
		t.Fatalf("DecrementStock() error = %v", err)
	}

	found, err := repo.FindByID(product.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Stock != 0 {
		t.Errorf("expected stock 0, got %d", found.Stock)
	}
}

func TestSpecificationDelete_BlockedWhileLinked(t *testing.T) {
	db := setupTestDB(t)
	productRepo := NewGormProductRepository(db)
	specRepo := NewGormSpecificationRepository(db)

	ram := createSpec(t, db, "8GB DDR4", 20)
	createProduct(t, productRepo, "Office PC", 500, []uint{ram.ID})

	err := specRepo.Delete(ram.ID)
	if !errors.Is(err, domain.ErrSpecificationInUse) {
		t.Fatalf("expected ErrSpecificationInUse, got %v", err)
	}
}

func TestSearch_IgnoresCase(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	createProduct(t, repo, "Gaming Tower", 900, nil)
	createProduct(t, repo, "Office PC", 500, nil)

	found, err := repo.Search("GAMING", 10, 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(found) != 1 || found[0].Name != "Gaming Tower" {
		t.Fatalf("Search(GAMING) = %v, want the Gaming Tower", found)
	}
}

func TestSpecificationSearch_IgnoresCase(t *testing.T) {
	db := setupTestDB(t)
	specRepo := NewGormSpecificationRepository(db)

	createSpec(t, db, "8GB DDR4", 20)

	byName, err := specRepo.SearchByName("ddr4", 10, 0)
	if err != nil {
		t.Fatalf("SearchByName() error = %v", err)
	}
	if len(byName) != 1 {
		t.Fatalf("SearchByName(ddr4) returned %d specs, want 1", len(byName))
	}

	byBrand, err := specRepo.SearchByBrandAndType("kingston", "ram", 10, 0)
	if err != nil {
		t.Fatalf("SearchByBrandAndType() error = %v", err)
	}
	if len(byBrand) != 1 {
		t.Fatalf("SearchByBrandAndType(kingston, ram) returned %d specs, want 1", len(byBrand))
	}
}
