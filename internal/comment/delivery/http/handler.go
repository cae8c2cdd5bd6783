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
	"github.com/VCL-tt/BK-VenComp/internal/comment/domain"
	"github.com/VCL-tt/BK-VenComp/internal/comment/usecase/command"
	"github.com/VCL-tt/BK-VenComp/internal/comment/usecase/query"
	"github.com/VCL-tt/BK-VenComp/internal/middleware"
	"github.com/VCL-tt/BK-VenComp/pkg/logger"
)

// CommentHandler handles HTTP requests for product comments
type CommentHandler struct {
	addHandler    *command.AddCommentHandler
	editHandler   *command.EditCommentHandler
	deleteHandler *command.DeleteCommentHandler
	listHandler   *query.ListByProductHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewCommentHandler(repo domain.CommentRepository, productRepo catalogdomain.ProductRepository) *CommentHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comment_requests_total",
			Help: "Total number of requests to the comment endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "comment_request_duration_seconds",
			Help:    "Duration of comment requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CommentHandler{
		addHandler:     command.NewAddCommentHandler(repo, productRepo),
		editHandler:    command.NewEditCommentHandler(repo),
		deleteHandler:  command.NewDeleteCommentHandler(repo),
		listHandler:    query.NewListByProductHandler(repo),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
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

func (h *CommentHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *CommentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products/{id}/comments", h.metricsMiddleware("/api/products/{id}/comments", h.ListComments)).Methods("GET")
	router.HandleFunc("/api/products/{id}/comments", h.metricsMiddleware("/api/products/{id}/comments", middleware.AuthMiddleware(h.AddComment))).Methods("POST")
	router.HandleFunc("/api/comments/{id}", h.metricsMiddleware("/api/comments/{id}", middleware.AuthMiddleware(h.EditComment))).Methods("PUT")
	router.HandleFunc("/api/comments/{id}", h.metricsMiddleware("/api/comments/{id}", middleware.AuthMiddleware(h.DeleteComment))).Methods("DELETE")
}

// statusForCommentError maps comment domain errors to HTTP status codes
func statusForCommentError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotAuthor):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// ListComments handles GET /api/products/{id}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	comments, err := h.listHandler.Handle(query.ListByProductQuery{
		ProductID: productID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list comments")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list comments"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: comments})
}

// AddComment handles POST /api/products/{id}/comments
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	username, _ := r.Context().Value(middleware.UsernameKey).(string)

	comment, err := h.addHandler.Handle(command.AddCommentCommand{
		ProductID: productID,
		UserID:    userID,
		Username:  username,
		Body:      req.Body,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to add comment")
		respondJSON(w, statusForCommentError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Comment added successfully",
		Data:    comment,
	})
}

// EditComment handles PUT /api/comments/{id}
func (h *CommentHandler) EditComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	commentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	comment, err := h.editHandler.Handle(command.EditCommentCommand{
		CommentID: commentID,
		UserID:    userID,
		Body:      req.Body,
	})
	if err != nil {
		respondJSON(w, statusForCommentError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Comment updated successfully",
		Data:    comment,
	})
}

// DeleteComment handles DELETE /api/comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	commentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := h.deleteHandler.Handle(command.DeleteCommentCommand{
		CommentID: commentID,
		UserID:    userID,
	})
	if err != nil {
		respondJSON(w, statusForCommentError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Comment deleted successfully"})
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
