package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/VCL-tt/BK-VenComp/internal/catalog/domain"
	"github.com/VCL-tt/BK-VenComp/internal/catalog/usecase/command"
	"github.com/VCL-tt/BK-VenComp/internal/catalog/usecase/query"
	"github.com/VCL-tt/BK-VenComp/internal/middleware"
	"github.com/VCL-tt/BK-VenComp/pkg/logger"
)

// SpecificationHandler handles HTTP requests for specifications
type SpecificationHandler struct {
	createHandler *command.CreateSpecificationHandler
	updateHandler *command.UpdateSpecificationHandler
	deleteHandler *command.DeleteSpecificationHandler
	listHandler   *query.ListSpecificationsHandler
	searchHandler *query.SearchSpecificationsHandler
	repo          domain.SpecificationRepository
}

func NewSpecificationHandler(repo domain.SpecificationRepository) *SpecificationHandler {
	return &SpecificationHandler{
		createHandler: command.NewCreateSpecificationHandler(repo),
		updateHandler: command.NewUpdateSpecificationHandler(repo),
		deleteHandler: command.NewDeleteSpecificationHandler(repo),
		listHandler:   query.NewListSpecificationsHandler(repo),
		searchHandler: query.NewSearchSpecificationsHandler(repo),
		repo:          repo,
	}
}

func (h *SpecificationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/specifications", h.ListSpecifications).Methods("GET")
	router.HandleFunc("/api/specifications/search", h.SearchSpecifications).Methods("GET")

	router.HandleFunc("/api/specifications", middleware.AdminMiddleware(h.CreateSpecification)).Methods("POST")
	router.HandleFunc("/api/specifications/{id}", middleware.AdminMiddleware(h.UpdateSpecification)).Methods("PUT")
	router.HandleFunc("/api/specifications/{id}", middleware.AdminMiddleware(h.DeleteSpecification)).Methods("DELETE")
}

type specificationRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Brand           string  `json:"brand"`
	SpecType        string  `json:"spec_type"`
	AdditionalPrice float64 `json:"additional_price"`
}

// CreateSpecification handles POST /api/specifications
func (h *SpecificationHandler) CreateSpecification(w http.ResponseWriter, r *http.Request) {
	var req specificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	spec, err := h.createHandler.Handle(command.CreateSpecificationCommand{
		Name:            req.Name,
		Description:     req.Description,
		Brand:           req.Brand,
		SpecType:        req.SpecType,
		AdditionalPrice: req.AdditionalPrice,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create specification")
		respondJSON(w, statusForCatalogError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Specification created successfully",
		Data:    spec,
	})
}

// UpdateSpecification handles PUT /api/specifications/{id}
func (h *SpecificationHandler) UpdateSpecification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req specificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	spec, err := h.updateHandler.Handle(command.UpdateSpecificationCommand{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		Brand:           req.Brand,
		SpecType:        req.SpecType,
		AdditionalPrice: req.AdditionalPrice,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update specification")
		respondJSON(w, statusForCatalogError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Specification updated successfully",
		Data:    spec,
	})
}

// DeleteSpecification handles DELETE /api/specifications/{id}
func (h *SpecificationHandler) DeleteSpecification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteSpecificationCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete specification")
		respondJSON(w, statusForCatalogError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Specification deleted successfully"})
}

// ListSpecifications handles GET /api/specifications
func (h *SpecificationHandler) ListSpecifications(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	specs, err := h.listHandler.Handle(query.ListSpecificationsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list specifications")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list specifications"})
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"specifications": specs,
			"total":          count,
			"limit":          limit,
			"offset":         offset,
		},
	})
}

// SearchSpecifications handles GET /api/specifications/search
func (h *SpecificationHandler) SearchSpecifications(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	specs, err := h.searchHandler.Handle(query.SearchSpecificationsQuery{
		Name:     r.URL.Query().Get("name"),
		Brand:    r.URL.Query().Get("brand"),
		SpecType: r.URL.Query().Get("type"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: specs})
}
