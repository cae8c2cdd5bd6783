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
	"github.com/VCL-tt/BK-VenComp/internal/favorite/domain"
	"github.com/VCL-tt/BK-VenComp/internal/favorite/usecase/command"
	"github.com/VCL-tt/BK-VenComp/internal/favorite/usecase/query"
	"github.com/VCL-tt/BK-VenComp/internal/middleware"
	"github.com/VCL-tt/BK-VenComp/pkg/logger"
)

// FavoriteHandler handles HTTP requests for favorites
type FavoriteHandler struct {
	addHandler    *command.AddFavoriteHandler
	removeHandler *command.RemoveFavoriteHandler
	listHandler   *query.ListFavoritesHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewFavoriteHandler(repo domain.FavoriteRepository) *FavoriteHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorite_requests_total",
			Help: "Total number of requests to the favorite endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "favorite_request_duration_seconds",
			Help:    "Duration of favorite requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &FavoriteHandler{
		addHandler:     command.NewAddFavoriteHandler(repo),
		removeHandler:  command.NewRemoveFavoriteHandler(repo),
		listHandler:    query.NewListFavoritesHandler(repo),
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

func (h *FavoriteHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *FavoriteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/favorites", h.metricsMiddleware("/api/favorites", middleware.AuthMiddleware(h.ListFavorites))).Methods("GET")
	router.HandleFunc("/api/products/{id}/favorite", h.metricsMiddleware("/api/products/{id}/favorite", middleware.AuthMiddleware(h.AddFavorite))).Methods("POST")
	router.HandleFunc("/api/products/{id}/favorite", h.metricsMiddleware("/api/products/{id}/favorite", middleware.AuthMiddleware(h.RemoveFavorite))).Methods("DELETE")
}

// statusForFavoriteError maps favorite domain errors to HTTP status codes
func statusForFavoriteError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// AddFavorite handles POST /api/products/{id}/favorite
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	favorite, err := h.addHandler.Handle(command.AddFavoriteCommand{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to add favorite")
		respondJSON(w, statusForFavoriteError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product added to favorites",
		Data:    favorite,
	})
}

// RemoveFavorite handles DELETE /api/products/{id}/favorite
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := h.removeHandler.Handle(command.RemoveFavoriteCommand{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		respondJSON(w, statusForFavoriteError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product removed from favorites"})
}

// ListFavorites handles GET /api/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := h.listHandler.Handle(query.ListFavoritesQuery{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list favorites")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list favorites"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: items})
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
