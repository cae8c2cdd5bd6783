package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/VCL-tt/BK-VenComp/internal/comment/domain"
)

type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Comment{})
}

func (r *GormCommentRepository) Create(comment *domain.Comment) error {
	return r.db.Create(comment).Error
}

func (r *GormCommentRepository) FindByID(id uint) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormCommentRepository) FindByProduct(productID uint, limit, offset int) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *GormCommentRepository) Update(comment *domain.Comment) error {
	result := r.db.Model(&domain.Comment{}).
		Where("id = ?", comment.ID).
		Update("body", comment.Body)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormCommentRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormCommentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Comment{}).Count(&count).Error
	return count, err
}
