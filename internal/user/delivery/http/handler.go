package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/VCL-tt/BK-VenComp/internal/middleware"
	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
	"github.com/VCL-tt/BK-VenComp/internal/user/usecase/command"
	"github.com/VCL-tt/BK-VenComp/internal/user/usecase/query"
	"github.com/VCL-tt/BK-VenComp/pkg/logger"
	"github.com/VCL-tt/BK-VenComp/pkg/mailer"
)

// UserHandler handles HTTP requests for users using CQRS pattern
type UserHandler struct {
	registerHandler     *command.RegisterHandler
	loginHandler        *command.LoginHandler
	updateHandler       *command.UpdateUserHandler
	deleteHandler       *command.DeleteUserHandler
	changeRoleHandler   *command.ChangeRoleHandler
	toggleActiveHandler *command.ToggleActiveHandler
	requestResetHandler *command.RequestPasswordResetHandler
	resetHandler        *command.ResetPasswordHandler

	getHandler  *query.GetUserHandler
	listHandler *query.ListUsersHandler

	repo domain.UserRepository

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalUsers     prometheus.Gauge
}

// NewUserHandler creates a new user handler with manual DI
func NewUserHandler(repo domain.UserRepository, m mailer.Mailer) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_requests_total",
			Help: "Total number of requests to the user endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_request_duration_seconds",
			Help:    "Duration of user requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalUsers := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "user_total_users",
			Help: "Total number of registered users",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalUsers)

	return &UserHandler{
		registerHandler:     command.NewRegisterHandler(repo),
		loginHandler:        command.NewLoginHandler(repo),
		updateHandler:       command.NewUpdateUserHandler(repo),
		deleteHandler:       command.NewDeleteUserHandler(repo),
		changeRoleHandler:   command.NewChangeRoleHandler(repo),
		toggleActiveHandler: command.NewToggleActiveHandler(repo),
		requestResetHandler: command.NewRequestPasswordResetHandler(repo, m),
		resetHandler:        command.NewResetPasswordHandler(repo),
		getHandler:          query.NewGetUserHandler(repo),
		listHandler:         query.NewListUsersHandler(repo),
		repo:                repo,
		requestCounter:      requestCounter,
		requestLatency:      requestLatency,
		totalUsers:          totalUsers,
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

func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/api/users/register", h.metricsMiddleware("/api/users/register", h.Register)).Methods("POST")
	router.HandleFunc("/api/users/login", h.metricsMiddleware("/api/users/login", h.Login)).Methods("POST")
	router.HandleFunc("/api/users/password-reset/request", h.metricsMiddleware("/api/users/password-reset/request", h.RequestPasswordReset)).Methods("POST")
	router.HandleFunc("/api/users/password-reset/confirm", h.metricsMiddleware("/api/users/password-reset/confirm", h.ResetPassword)).Methods("POST")

	// Authenticated routes
	router.HandleFunc("/api/users/me", h.metricsMiddleware("/api/users/me", middleware.AuthMiddleware(h.Me))).Methods("GET")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", middleware.AuthMiddleware(h.UpdateUser))).Methods("PUT")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", middleware.AuthMiddleware(h.DeleteUser))).Methods("DELETE")

	// Admin routes
	router.HandleFunc("/api/users", h.metricsMiddleware("/api/users", middleware.AdminMiddleware(h.ListUsers))).Methods("GET")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", middleware.AdminMiddleware(h.GetUser))).Methods("GET")
	router.HandleFunc("/api/users/{id}/role", h.metricsMiddleware("/api/users/{id}/role", middleware.AdminMiddleware(h.ChangeRole))).Methods("PATCH")
	router.HandleFunc("/api/users/{id}/active", h.metricsMiddleware("/api/users/{id}/active", middleware.AdminMiddleware(h.ToggleActive))).Methods("PATCH")
}

// statusForUserError maps user domain errors to HTTP status codes
func statusForUserError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUserInactive):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrResetCodeInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

// Register handles POST /api/users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var cmd command.RegisterCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.registerHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to register user")
		respondJSON(w, statusForUserError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.updateUsersMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var cmd command.LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.loginHandler.Handle(cmd)
	if err != nil {
		respondJSON(w, statusForUserError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	user, err := h.getHandler.Handle(query.GetUserQuery{UserID: userID})
	if err != nil {
		respondJSON(w, statusForUserError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// GetUser handles GET /api/users/{id} (admin only)
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.getHandler.Handle(query.GetUserQuery{UserID: id})
	if err != nil {
		respondJSON(w, statusForUserError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// ListUsers handles GET /api/users (admin only)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.listHandler.Handle(query.ListUsersQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list users")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list users"})
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"users":  users,
			"total":  count,
			"limit":  limit,
			"offset": offset,
		},
	})
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.updateHandler.Handle(command.UpdateUserCommand{
		UserID:    id,
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CallerID:  callerID,
		IsAdmin:   middleware.IsAdmin(r),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update user")
		respondJSON(w, statusForUserError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "User updated successfully",
		Data:    user,
	})
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := h.deleteHandler.Handle(command.DeleteUserCommand{
		UserID:   id,
		CallerID: callerID,
		IsAdmin:  middleware.IsAdmin(r),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete user")
		respondJSON(w, statusForUserError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.updateUsersMetric()

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "User deleted successfully"})
}

// ChangeRole handles PATCH /api/users/{id}/role (admin only)
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.changeRoleHandler.Handle(command.ChangeRoleCommand{UserID: id, Role: req.Role})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to change role")
		respondJSON(w, statusForUserError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Role updated successfully",
		Data:    user,
	})
}

// ToggleActive handles PATCH /api/users/{id}/active (admin only)
func (h *UserHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.toggleActiveHandler.Handle(command.ToggleActiveCommand{UserID: id, Active: req.Active})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to toggle active flag")
		respondJSON(w, statusForUserError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "User updated successfully",
		Data:    user,
	})
}

// RequestPasswordReset handles POST /api/users/password-reset/request
func (h *UserHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var cmd command.RequestPasswordResetCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if err := h.requestResetHandler.Handle(cmd); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to request password reset")
		respondJSON(w, statusForUserError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "If the email is registered, a reset code has been sent",
	})
}

// ResetPassword handles POST /api/users/password-reset/confirm
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var cmd command.ResetPasswordCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if err := h.resetHandler.Handle(cmd); err != nil {
		respondJSON(w, statusForUserError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Password updated successfully"})
}

func (h *UserHandler) updateUsersMetric() {
	count, err := h.repo.Count()
	if err == nil {
		h.totalUsers.Set(float64(count))
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
