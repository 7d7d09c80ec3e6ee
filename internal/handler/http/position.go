package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrsuite/hr-backend-go/internal/domain/position"
	"github.com/hrsuite/hr-backend-go/internal/handler/http/response"
)

type PositionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ToggleStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type PositionHandlerImpl struct {
	positionService position.Service
}

func NewPositionHandler(positionService position.Service) PositionHandler {
	return &PositionHandlerImpl{positionService: positionService}
}

// Create implements PositionHandler.
func (h *PositionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req position.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.positionService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, created)
}

// Get implements PositionHandler.
func (h *PositionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.positionService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements PositionHandler.
func (h *PositionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, 20)

	filter := position.PositionFilter{
		Department: queryString(r, "department"),
		IsActive:   queryBool(r, "isActive"),
		Page:       page,
		Limit:      limit,
	}

	positions, total, err := h.positionService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithPagination(w, positions, response.NewPagination(page, limit, total))
}

// Update implements PositionHandler.
func (h *PositionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req position.UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.positionService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// ToggleStatus implements PositionHandler.
func (h *PositionHandlerImpl) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	updated, err := h.positionService.ToggleStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Delete implements PositionHandler.
func (h *PositionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.positionService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}
