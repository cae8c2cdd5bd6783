package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.User{}, &domain.PasswordResetToken{})
}

func (r *GormUserRepository) Create(user *domain.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).
			Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateUsername
		}

		if err := tx.Model(&domain.User{}).
			Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateEmail
		}

		return tx.Create(user).Error
	})
}

func (r *GormUserRepository) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindAll(limit, offset int) ([]domain.User, error) {
	var users []domain.User
	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (r *GormUserRepository) Update(user *domain.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).
			Where("username = ? AND id <> ?", user.Username, user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateUsername
		}

		if err := tx.Model(&domain.User{}).
			Where("email = ? AND id <> ?", user.Email, user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateEmail
		}

		result := tx.Model(&domain.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"username":   user.Username,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"role":       user.Role,
			"active":     user.Active,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *GormUserRepository) UpdatePassword(id uint, hashedPassword string) error {
	result := r.db.Model(&domain.User{}).Where("id = ?", id).Update("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormUserRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).Count(&count).Error
	return count, err
}

// ReplaceResetCode stores a fresh code for the email, discarding any
// previous one.
func (r *GormUserRepository) ReplaceResetCode(email, code string, expiresAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).Delete(&domain.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&domain.PasswordResetToken{
			Email:     email,
			Code:      code,
			ExpiresAt: expiresAt,
		}).Error
	})
}

func (r *GormUserRepository) FindResetCode(email string) (*domain.PasswordResetToken, error) {
	var token domain.PasswordResetToken
	err := r.db.Where("email = ?", email).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrResetCodeInvalid
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *GormUserRepository) DeleteResetCode(email string) error {
	return r.db.Where("email = ?", email).Delete(&domain.PasswordResetToken{}).Error
}
