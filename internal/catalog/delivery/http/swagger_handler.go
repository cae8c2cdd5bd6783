package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateProduct godoc
// @Summary Create a new product
// @Description Create a new product, optionally with initial specifications (Admin only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string,base_price=number,stock=int,image=string,category=string,product_type=string,specification_ids=[]int} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/products [post]
func (h *ProductHandler) CreateProductDoc() {}

// ListProducts godoc
// @Summary List products
// @Description List products with pagination and optional category filter
// @Tags Products
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Param category query string false "Category"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/products [get]
func (h *ProductHandler) ListProductsDoc() {}

// AddSpecification godoc
// @Summary Attach a specification to a product
// @Description Links the specification at the given quantity; an existing link has its quantity incremented. The stored price is updated in the same transaction. (Admin only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param specId path int true "Specification ID"
// @Param request body object{quantity=int} false "Quantity (default 1)"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id}/specifications/{specId} [post]
func (h *ProductHandler) AddSpecificationDoc() {}

// RemoveSpecification godoc
// @Summary Detach a specification from a product
// @Description Removes the link and subtracts its surcharge from the stored price (Admin only)
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Param specId path int true "Specification ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id}/specifications/{specId} [delete]
func (h *ProductHandler) RemoveSpecificationDoc() {}

// ListSpecifications godoc
// @Summary List specifications
// @Tags Specifications
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/specifications [get]
func (h *SpecificationHandler) ListSpecificationsDoc() {}
