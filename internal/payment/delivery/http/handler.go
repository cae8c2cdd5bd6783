package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalogdomain "github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/internal/middleware"
	orderdomain "github.com/VCL-tt/BK-VenComp/internal/order/domain"
	"github.com/VCL-tt/BK-VenComp/internal/payment/domain"
	"github.com/VCL-tt/BK-VenComp/internal/payment/receipt"
	"github.com/VCL-tt/BK-VenComp/internal/payment/usecase/command"
	"github.com/VCL-tt/BK-VenComp/internal/payment/usecase/query"
	"github.com/VCL-tt/BK-VenComp/kafka"
	"github.com/VCL-tt/BK-VenComp/pkg/logger"
)

// PaymentHandler handles HTTP requests for payments using CQRS pattern
type PaymentHandler struct {
	recordHandler *command.RecordPaymentHandler

	getHandler     *query.GetPaymentHandler
	listHandler    *query.ListPaymentsHandler
	myHandler      *query.MyPaymentsHandler
	orderHandler   *query.OrderPaymentsHandler
	receiptHandler *query.GetReceiptHandler

	orderRepo orderdomain.OrderRepository
	publisher *kafka.Publisher

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalPayments  prometheus.Counter
}

// NewPaymentHandler creates a new payment handler with manual DI. The
// publisher may be nil; payments then complete without emitting events.
func NewPaymentHandler(
	paymentRepo domain.PaymentRepository,
	orderRepo orderdomain.OrderRepository,
	productRepo catalogdomain.ProductRepository,
	renderer receipt.Renderer,
	publisher *kafka.Publisher,
) *PaymentHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_requests_total",
			Help: "Total number of requests to the payment endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_request_duration_seconds",
			Help:    "Duration of payment requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalPayments := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_completed_total",
			Help: "Total number of completed payments",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalPayments)

	return &PaymentHandler{
		recordHandler:  command.NewRecordPaymentHandler(paymentRepo, orderRepo),
		getHandler:     query.NewGetPaymentHandler(paymentRepo),
		listHandler:    query.NewListPaymentsHandler(paymentRepo),
		myHandler:      query.NewMyPaymentsHandler(paymentRepo),
		orderHandler:   query.NewOrderPaymentsHandler(paymentRepo, orderRepo),
		receiptHandler: query.NewGetReceiptHandler(paymentRepo, orderRepo, productRepo, renderer),
		orderRepo:      orderRepo,
		publisher:      publisher,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		totalPayments:  totalPayments,
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

func (h *PaymentHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/payments", h.metricsMiddleware("/api/payments", middleware.AuthMiddleware(h.RecordPayment))).Methods("POST")
	router.HandleFunc("/api/payments", h.metricsMiddleware("/api/payments", middleware.AdminMiddleware(h.ListPayments))).Methods("GET")
	router.HandleFunc("/api/payments/my", h.metricsMiddleware("/api/payments/my", middleware.AuthMiddleware(h.MyPayments))).Methods("GET")
	router.HandleFunc("/api/payments/{id}", h.metricsMiddleware("/api/payments/{id}", middleware.AuthMiddleware(h.GetPayment))).Methods("GET")
	router.HandleFunc("/api/payments/{id}/receipt", h.metricsMiddleware("/api/payments/{id}/receipt", middleware.AuthMiddleware(h.GetReceipt))).Methods("GET")
	router.HandleFunc("/api/orders/{orderId}/payments", h.metricsMiddleware("/api/orders/{orderId}/payments", middleware.AuthMiddleware(h.OrderPayments))).Methods("GET")
}

// statusForPaymentError maps payment domain errors to HTTP status codes
func statusForPaymentError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOrderPaid):
		return http.StatusConflict
	case errors.Is(err, orderdomain.ErrNotOwner):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// RecordPayment handles POST /api/payments
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	var req struct {
		OrderID uint   `json:"order_id"`
		Method  string `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	payment, err := h.recordHandler.Handle(command.RecordPaymentCommand{
		OrderID: req.OrderID,
		UserID:  userID,
		Method:  req.Method,
		IsAdmin: middleware.IsAdmin(r),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("order_id", req.OrderID).Msg("Failed to record payment")
		respondJSON(w, statusForPaymentError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.totalPayments.Inc()
	h.publishOrderPaid(r, payment)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Payment recorded successfully",
		Data:    payment,
	})
}

func (h *PaymentHandler) publishOrderPaid(r *http.Request, payment *domain.Payment) {
	if h.publisher == nil {
		return
	}

	var productIDs []uint
	if order, err := h.orderRepo.FindByID(payment.OrderID); err == nil {
		for _, op := range order.Products {
			productIDs = append(productIDs, op.ProductID)
		}
	}

	err := h.publisher.PublishOrderPaid(r.Context(), kafka.OrderPaidEvent{
		OrderID:    payment.OrderID,
		PaymentID:  payment.ID,
		UserID:     payment.UserID,
		ProductIDs: productIDs,
		Amount:     payment.Amount,
		Method:     payment.Method,
	})
	if err != nil {
		// The payment is already committed; the event is best effort.
		logger.Logger.Error().Err(err).Uint("payment_id", payment.ID).Msg("Failed to publish order paid event")
	}
}

// GetPayment handles GET /api/payments/{id}
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	payment, err := h.getHandler.Handle(query.GetPaymentQuery{
		PaymentID: id,
		UserID:    userID,
		IsAdmin:   middleware.IsAdmin(r),
	})
	if err != nil {
		respondJSON(w, statusForPaymentError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: payment})
}

// ListPayments handles GET /api/payments (admin only)
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	payments, err := h.listHandler.Handle(query.ListPaymentsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list payments")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list payments"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: payments})
}

// MyPayments handles GET /api/payments/my
func (h *PaymentHandler) MyPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	payments, err := h.myHandler.Handle(query.MyPaymentsQuery{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list payments")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list payments"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: payments})
}

// OrderPayments handles GET /api/orders/{orderId}/payments
func (h *PaymentHandler) OrderPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	orderID, ok := pathID(w, r, "orderId")
	if !ok {
		return
	}

	payments, err := h.orderHandler.Handle(query.OrderPaymentsQuery{
		OrderID: orderID,
		UserID:  userID,
		IsAdmin: middleware.IsAdmin(r),
	})
	if err != nil {
		respondJSON(w, statusForPaymentError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: payments})
}

// GetReceipt handles GET /api/payments/{id}/receipt
func (h *PaymentHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	username, _ := r.Context().Value(middleware.UsernameKey).(string)

	body, contentType, err := h.receiptHandler.Handle(query.GetReceiptQuery{
		PaymentID: id,
		UserID:    userID,
		Username:  username,
		IsAdmin:   middleware.IsAdmin(r),
	})
	if err != nil {
		respondJSON(w, statusForPaymentError(err), Response{Success: false, Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%d.txt", id))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
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
