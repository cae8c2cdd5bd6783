package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalogdomain "github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/internal/middleware"
	"github.com/VCL-tt/BK-VenComp/internal/order/domain"
	"github.com/VCL-tt/BK-VenComp/internal/order/usecase/command"
	"github.com/VCL-tt/BK-VenComp/internal/order/usecase/query"
	"github.com/VCL-tt/BK-VenComp/pkg/logger"
)

// OrderHandler handles HTTP requests for orders using CQRS pattern
type OrderHandler struct {
	createHandler        *command.CreateOrderHandler
	addProductHandler    *command.AddProductHandler
	removeProductHandler *command.RemoveProductHandler
	deleteHandler        *command.DeleteOrderHandler

	getHandler  *query.GetOrderHandler
	listHandler *query.ListOrdersHandler
	cartHandler *query.GetCartHandler

	repo domain.OrderRepository

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalOrders    prometheus.Gauge
}

// NewOrderHandler creates a new order handler with manual DI
func NewOrderHandler(repo domain.OrderRepository) *OrderHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_requests_total",
			Help: "Total number of requests to the order endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_request_duration_seconds",
			Help:    "Duration of order requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalOrders := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "order_total_orders",
			Help: "Total number of orders",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalOrders)

	return &OrderHandler{
		createHandler:        command.NewCreateOrderHandler(repo),
		addProductHandler:    command.NewAddProductHandler(repo),
		removeProductHandler: command.NewRemoveProductHandler(repo),
		deleteHandler:        command.NewDeleteOrderHandler(repo),
		getHandler:           query.NewGetOrderHandler(repo),
		listHandler:          query.NewListOrdersHandler(repo),
		cartHandler:          query.NewGetCartHandler(repo),
		repo:                 repo,
		requestCounter:       requestCounter,
		requestLatency:       requestLatency,
		totalOrders:          totalOrders,
	}
}

// Response is the JSON envelope shared by the HTTP handlers
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *OrderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	// All order routes require authentication
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", middleware.AuthMiddleware(h.CreateOrder))).Methods("POST")
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", middleware.AuthMiddleware(h.ListOrders))).Methods("GET")
	router.HandleFunc("/api/orders/cart", h.metricsMiddleware("/api/orders/cart", middleware.AuthMiddleware(h.GetCart))).Methods("GET")
	router.HandleFunc("/api/orders/cart/products/{productId}", h.metricsMiddleware("/api/orders/cart/products/{productId}", middleware.AuthMiddleware(h.AddProduct))).Methods("POST")
	router.HandleFunc("/api/orders/{id}", h.metricsMiddleware("/api/orders/{id}", middleware.AuthMiddleware(h.GetOrder))).Methods("GET")
	router.HandleFunc("/api/orders/{id}", h.metricsMiddleware("/api/orders/{id}", middleware.AuthMiddleware(h.DeleteOrder))).Methods("DELETE")
	router.HandleFunc("/api/orders/{id}/products/{productId}", h.metricsMiddleware("/api/orders/{id}/products/{productId}", middleware.AuthMiddleware(h.RemoveProduct))).Methods("DELETE")
}

// statusForOrderError maps order domain errors to HTTP status codes
func statusForOrderError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOrderPaid):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	req := struct {
		ProductIDs []uint `json:"product_ids"`
	}{}
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
			return
		}
	}

	order, err := h.createHandler.Handle(command.CreateOrderCommand{
		UserID:     userID,
		ProductIDs: req.ProductIDs,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create order")
		respondJSON(w, statusForOrderError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.updateOrdersMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order created successfully",
		Data:    order,
	})
}

// GetCart handles GET /api/orders/cart
func (h *OrderHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	cart, err := h.cartHandler.Handle(query.GetCartQuery{UserID: userID})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to resolve cart")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to resolve cart"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: cart})
}

// AddProduct handles POST /api/orders/cart/products/{productId}
func (h *OrderHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	productID, ok := pathID(w, r, "productId")
	if !ok {
		return
	}

	order, err := h.addProductHandler.Handle(command.AddProductCommand{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to add product to cart")
		respondJSON(w, statusForOrderError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product added to cart",
		Data:    order,
	})
}

// RemoveProduct handles DELETE /api/orders/{id}/products/{productId}
func (h *OrderHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "productId")
	if !ok {
		return
	}

	order, err := h.removeProductHandler.Handle(command.RemoveProductCommand{
		OrderID:   orderID,
		ProductID: productID,
		UserID:    userID,
		IsAdmin:   middleware.IsAdmin(r),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to remove product from order")
		respondJSON(w, statusForOrderError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product removed from order",
		Data:    order,
	})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.listHandler.Handle(query.ListOrdersQuery{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list orders")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list orders"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: orders})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.getHandler.Handle(query.GetOrderQuery{
		OrderID: orderID,
		UserID:  userID,
		IsAdmin: middleware.IsAdmin(r),
	})
	if err != nil {
		respondJSON(w, statusForOrderError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: order})
}

// DeleteOrder handles DELETE /api/orders/{id}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := h.deleteHandler.Handle(command.DeleteOrderCommand{
		OrderID: orderID,
		UserID:  userID,
		IsAdmin: middleware.IsAdmin(r),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete order")
		respondJSON(w, statusForOrderError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.updateOrdersMetric()

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Order deleted successfully"})
}

func (h *OrderHandler) updateOrdersMetric() {
	count, err := h.repo.Count()
	if err == nil {
		h.totalOrders.Set(float64(count))
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
