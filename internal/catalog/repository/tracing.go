package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// GormProductRepositoryWithTracing wraps GormProductRepository with tracing
// for the price-mutating hot paths
type GormProductRepositoryWithTracing struct {
	*GormProductRepository
}

func NewGormProductRepositoryWithTracing(db *gorm.DB) *GormProductRepositoryWithTracing {
	return &GormProductRepositoryWithTracing{
		GormProductRepository: NewGormProductRepository(db),
	}
}

// AddSpecificationWithContext traces the link upsert and price recompute
func (r *GormProductRepositoryWithTracing) AddSpecificationWithContext(ctx context.Context, productID, specificationID uint, quantity int) (*domain.Product, error) {
	_, span := tracer.Start(ctx, "repository.AddSpecification",
		trace.WithAttributes(
			attribute.Int("product.id", int(productID)),
			attribute.Int("specification.id", int(specificationID)),
			attribute.Int("specification.quantity", quantity),
		),
	)
	defer span.End()

	product, err := r.GormProductRepository.AddSpecification(productID, specificationID, quantity)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Float64("product.price", product.Price))
	return product, nil
}

// RemoveSpecificationWithContext traces the link removal and price recompute
func (r *GormProductRepositoryWithTracing) RemoveSpecificationWithContext(ctx context.Context, productID, specificationID uint) (*domain.Product, error) {
	_, span := tracer.Start(ctx, "repository.RemoveSpecification",
		trace.WithAttributes(
			attribute.Int("product.id", int(productID)),
			attribute.Int("specification.id", int(specificationID)),
		),
	)
	defer span.End()

	product, err := r.GormProductRepository.RemoveSpecification(productID, specificationID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Float64("product.price", product.Price))
	return product, nil
}
