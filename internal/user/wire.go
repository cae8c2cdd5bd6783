//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/VCL-tt/BK-VenComp/internal/user/delivery/http"
	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
	"github.com/VCL-tt/BK-VenComp/internal/user/repository"
	"github.com/VCL-tt/BK-VenComp/pkg/mailer"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

// InitializeUserHandler initializes the user HTTP handler with all dependencies
func InitializeUserHandler(db *gorm.DB, m mailer.Mailer) (*http.UserHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewUserHandler,
	)
	return nil, nil
}
