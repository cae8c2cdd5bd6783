package repository

import (
	"errors"

	"gorm.io/gorm"

	catalogdomain "github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/internal/favorite/domain"
)

type GormFavoriteRepository struct {
	db *gorm.DB
}

func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

func (r *GormFavoriteRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Favorite{})
}

// Add saves the product for the user. A second add of the same product is
// rejected, the unique index backs up the in-transaction check.
func (r *GormFavoriteRepository) Add(userID, productID uint) (*domain.Favorite, error) {
	favorite := &domain.Favorite{UserID: userID, ProductID: productID}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var product catalogdomain.Product
		err := tx.First(&product, productID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalogdomain.ErrProductNotFound
		}
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&domain.Favorite{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicate
		}

		return tx.Create(favorite).Error
	})
	if err != nil {
		return nil, err
	}
	return favorite, nil
}

func (r *GormFavoriteRepository) Remove(userID, productID uint) error {
	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser joins favorites with the catalog so the listing carries the
// products' current names and prices.
func (r *GormFavoriteRepository) ListByUser(userID uint, limit, offset int) ([]domain.FavoriteItem, error) {
	var items []domain.FavoriteItem
	err := r.db.Raw(
		`SELECT f.id AS favorite_id, f.product_id, p.name, p.price, p.image, p.category, f.created_at AS added_at
		 FROM favorites f
		 JOIN products p ON p.id = f.product_id AND p.deleted_at IS NULL
		 WHERE f.user_id = ?
		 ORDER BY f.created_at DESC
		 LIMIT ? OFFSET ?`, userID, limit, offset,
	).Scan(&items).Error
	return items, err
}

func (r *GormFavoriteRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Favorite{}).Count(&count).Error
	return count, err
}
