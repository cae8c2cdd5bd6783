//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/delivery/http"
	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/internal/catalog/repository"
	"github.com/VCL-tt/BK-VenComp/internal/catalog/usecase/command"
	"github.com/VCL-tt/BK-VenComp/internal/catalog/usecase/query"
	"github.com/VCL-tt/BK-VenComp/pkg/cache"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

// ProvideSpecificationRepository provides the specification repository
func ProvideSpecificationRepository(db *gorm.DB) domain.SpecificationRepository {
	return repository.NewGormSpecificationRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideSpecificationRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewCreateProductHandler,
	command.NewUpdateProductHandler,
	command.NewDeleteProductHandler,
	command.NewUpdateStockHandler,
	command.NewAddSpecificationHandler,
	command.NewRemoveSpecificationHandler,
	command.NewReplaceSpecificationsHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetProductHandler,
	query.NewListProductsHandler,
	query.NewSearchProductsHandler,
	query.NewFilterProductsHandler,
)

// InitializeProductHandler initializes the product HTTP handler with all dependencies
func InitializeProductHandler(db *gorm.DB, c *cache.Cache) (*http.ProductHandler, error) {
	wire.Build(
		RepositorySet,
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewProductHandlerWithDI,
	)
	return nil, nil
}
