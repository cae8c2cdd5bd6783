package domain

import "errors"

var (
	// ErrProductNotFound is returned when the referenced product does not exist
	ErrProductNotFound = errors.New("product not found")
	// ErrSpecificationNotFound is returned when the referenced specification does not exist
	ErrSpecificationNotFound = errors.New("specification not found")
	// ErrLinkNotFound is returned when no link exists for the (product, specification) pair
	ErrLinkNotFound = errors.New("product specification link not found")
	// ErrDuplicateName is returned when a product with the same name already exists
	ErrDuplicateName = errors.New("product name already exists")
	// ErrSpecificationInUse is returned when deleting a specification still linked to a product
	ErrSpecificationInUse = errors.New("specification is referenced by a product")
)
