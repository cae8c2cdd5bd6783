package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/internal/catalog/usecase/command"
	"github.com/VCL-tt/BK-VenComp/internal/catalog/usecase/query"
	"github.com/VCL-tt/BK-VenComp/internal/middleware"
	"github.com/VCL-tt/BK-VenComp/pkg/cache"
	"github.com/VCL-tt/BK-VenComp/pkg/logger"
)

const productCachePattern = "catalog:products:*"

// ProductHandler handles HTTP requests for products using CQRS pattern
type ProductHandler struct {
	// Command handlers
	createHandler       *command.CreateProductHandler
	updateHandler       *command.UpdateProductHandler
	deleteHandler       *command.DeleteProductHandler
	updateStockHandler  *command.UpdateStockHandler
	addSpecHandler      *command.AddSpecificationHandler
	removeSpecHandler   *command.RemoveSpecificationHandler
	replaceSpecsHandler *command.ReplaceSpecificationsHandler

	// Query handlers
	getHandler    *query.GetProductHandler
	listHandler   *query.ListProductsHandler
	searchHandler *query.SearchProductsHandler
	filterHandler *query.FilterProductsHandler

	repo  domain.ProductRepository
	cache *cache.Cache

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalProducts  prometheus.Gauge
}

// NewProductHandler creates a new product handler with manual DI
func NewProductHandler(repo domain.ProductRepository, c *cache.Cache) *ProductHandler {
	return NewProductHandlerWithDI(
		command.NewCreateProductHandler(repo),
		command.NewUpdateProductHandler(repo),
		command.NewDeleteProductHandler(repo),
		command.NewUpdateStockHandler(repo),
		command.NewAddSpecificationHandler(repo),
		command.NewRemoveSpecificationHandler(repo),
		command.NewReplaceSpecificationsHandler(repo),
		query.NewGetProductHandler(repo),
		query.NewListProductsHandler(repo, c),
		query.NewSearchProductsHandler(repo),
		query.NewFilterProductsHandler(repo),
		repo,
		c,
	)
}

// NewProductHandlerWithDI creates a new product handler using dependency injection
func NewProductHandlerWithDI(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	updateStockHandler *command.UpdateStockHandler,
	addSpecHandler *command.AddSpecificationHandler,
	removeSpecHandler *command.RemoveSpecificationHandler,
	replaceSpecsHandler *command.ReplaceSpecificationsHandler,
	getHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	searchHandler *query.SearchProductsHandler,
	filterHandler *query.FilterProductsHandler,
	repo domain.ProductRepository,
	c *cache.Cache,
) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of requests to the catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_total_products",
			Help: "Total number of products in the catalog",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalProducts)

	return &ProductHandler{
		createHandler:       createHandler,
		updateHandler:       updateHandler,
		deleteHandler:       deleteHandler,
		updateStockHandler:  updateStockHandler,
		addSpecHandler:      addSpecHandler,
		removeSpecHandler:   removeSpecHandler,
		replaceSpecsHandler: replaceSpecsHandler,
		getHandler:          getHandler,
		listHandler:         listHandler,
		searchHandler:       searchHandler,
		filterHandler:       filterHandler,
		repo:                repo,
		cache:               c,
		requestCounter:      requestCounter,
		requestLatency:      requestLatency,
		totalProducts:       totalProducts,
	}
}

// Response is the JSON envelope shared by the HTTP handlers
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/search", h.metricsMiddleware("/api/products/search", h.SearchProducts)).Methods("GET")
	router.HandleFunc("/api/products/filter", h.metricsMiddleware("/api/products/filter", h.FilterProducts)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", middleware.AdminMiddleware(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", middleware.AdminMiddleware(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", middleware.AdminMiddleware(h.DeleteProduct))).Methods("DELETE")
	router.HandleFunc("/api/products/{id}/stock", h.metricsMiddleware("/api/products/{id}/stock", middleware.AdminMiddleware(h.UpdateStock))).Methods("PATCH")
	router.HandleFunc("/api/products/{id}/specifications", h.metricsMiddleware("/api/products/{id}/specifications", middleware.AdminMiddleware(h.ReplaceSpecifications))).Methods("PUT")
	router.HandleFunc("/api/products/{id}/specifications/{specId}", h.metricsMiddleware("/api/products/{id}/specifications/{specId}", middleware.AdminMiddleware(h.AddSpecification))).Methods("POST")
	router.HandleFunc("/api/products/{id}/specifications/{specId}", h.metricsMiddleware("/api/products/{id}/specifications/{specId}", middleware.AdminMiddleware(h.RemoveSpecification))).Methods("DELETE")
}

// statusForCatalogError maps catalog domain errors to HTTP status codes
func statusForCatalogError(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrSpecificationNotFound),
		errors.Is(err, domain.ErrLinkNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateName),
		errors.Is(err, domain.ErrSpecificationInUse):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name             string  `json:"name"`
		Description      string  `json:"description"`
		BasePrice        float64 `json:"base_price"`
		Stock            int     `json:"stock"`
		Image            string  `json:"image"`
		Category         string  `json:"category"`
		ProductType      string  `json:"product_type"`
		SpecificationIDs []uint  `json:"specification_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.createHandler.Handle(command.CreateProductCommand{
		Name:             req.Name,
		Description:      req.Description,
		BasePrice:        req.BasePrice,
		Stock:            req.Stock,
		Image:            req.Image,
		Category:         req.Category,
		ProductType:      req.ProductType,
		SpecificationIDs: req.SpecificationIDs,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create product")
		respondJSON(w, statusForCatalogError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.invalidateCache(r)
	h.updateProductsMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	category := r.URL.Query().Get("category")

	products, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{
		Limit:    limit,
		Offset:   offset,
		Category: category,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list products"})
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": products,
			"total":    count,
			"limit":    limit,
			"offset":   offset,
		},
	})
}

// SearchProducts handles GET /api/products/search
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.searchHandler.Handle(query.SearchProductsQuery{
		Term:   r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// FilterProducts handles GET /api/products/filter
func (h *ProductHandler) FilterProducts(w http.ResponseWriter, r *http.Request) {
	q := query.FilterProductsQuery{}
	if v := r.URL.Query().Get("price_min"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			q.PriceMin = &min
		}
	}
	if v := r.URL.Query().Get("price_max"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			q.PriceMax = &max
		}
	}
	if v := r.URL.Query().Get("in_stock"); v != "" {
		inStock := v == "true" || v == "1"
		q.InStock = &inStock
	}
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	q.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.filterHandler.Handle(q)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.getHandler.Handle(query.GetProductQuery{ID: id})
	if err != nil {
		respondJSON(w, statusForCatalogError(err), Response{Success: false, Error: "Product not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		BasePrice   float64 `json:"base_price"`
		Stock       int     `json:"stock"`
		Image       string  `json:"image"`
		Category    string  `json:"category"`
		ProductType string  `json:"product_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.updateHandler.Handle(command.UpdateProductCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Stock:       req.Stock,
		Image:       req.Image,
		Category:    req.Category,
		ProductType: req.ProductType,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update product")
		respondJSON(w, statusForCatalogError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.invalidateCache(r)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteProductCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete product")
		respondJSON(w, statusForCatalogError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.invalidateCache(r)
	h.updateProductsMetric()

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product deleted successfully"})
}

// UpdateStock handles PATCH /api/products/{id}/stock
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Stock int `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if err := h.updateStockHandler.Handle(command.UpdateStockCommand{ProductID: id, Stock: req.Stock}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update stock")
		respondJSON(w, statusForCatalogError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.invalidateCache(r)

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Stock updated successfully"})
}

// AddSpecification handles POST /api/products/{id}/specifications/{specId}
func (h *ProductHandler) AddSpecification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	specID, ok := pathID(w, r, "specId")
	if !ok {
		return
	}

	req := struct {
		Quantity int `json:"quantity"`
	}{Quantity: 1}
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
			return
		}
	}

	product, err := h.addSpecHandler.Handle(command.AddSpecificationCommand{
		ProductID:       id,
		SpecificationID: specID,
		Quantity:        req.Quantity,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to add specification")
		respondJSON(w, statusForCatalogError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.invalidateCache(r)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Specification added successfully",
		Data:    product,
	})
}

// RemoveSpecification handles DELETE /api/products/{id}/specifications/{specId}
func (h *ProductHandler) RemoveSpecification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	specID, ok := pathID(w, r, "specId")
	if !ok {
		return
	}

	product, err := h.removeSpecHandler.Handle(command.RemoveSpecificationCommand{
		ProductID:       id,
		SpecificationID: specID,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to remove specification")
		respondJSON(w, statusForCatalogError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.invalidateCache(r)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Specification removed successfully",
		Data:    product,
	})
}

// ReplaceSpecifications handles PUT /api/products/{id}/specifications
func (h *ProductHandler) ReplaceSpecifications(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		SpecificationIDs []uint `json:"specification_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.replaceSpecsHandler.Handle(command.ReplaceSpecificationsCommand{
		ProductID:        id,
		SpecificationIDs: req.SpecificationIDs,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to replace specifications")
		respondJSON(w, statusForCatalogError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.invalidateCache(r)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Specifications replaced successfully",
		Data:    product,
	})
}

func (h *ProductHandler) invalidateCache(r *http.Request) {
	h.cache.Invalidate(r.Context(), productCachePattern)
}

func (h *ProductHandler) updateProductsMetric() {
	count, err := h.repo.Count()
	if err == nil {
		h.totalProducts.Set(float64(count))
	}
}

// pathID parses a uint path variable, writing a 400 response on failure
func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
