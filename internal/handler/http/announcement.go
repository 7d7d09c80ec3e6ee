package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrsuite/hr-backend-go/internal/domain/announcement"
	"github.com/hrsuite/hr-backend-go/internal/handler/http/response"
)

type AnnouncementHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type AnnouncementHandlerImpl struct {
	announcementService announcement.Service
}

func NewAnnouncementHandler(announcementService announcement.Service) AnnouncementHandler {
	return &AnnouncementHandlerImpl{announcementService: announcementService}
}

// Create implements AnnouncementHandler. Manager and admin RH only.
func (h *AnnouncementHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req announcement.CreateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.announcementService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, created)
}

// Get implements AnnouncementHandler.
func (h *AnnouncementHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.announcementService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements AnnouncementHandler. Defaults to active, unexpired
// announcements unless activeOnly=false is passed.
func (h *AnnouncementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, 20)

	activeOnly := true
	if flag := queryBool(r, "activeOnly"); flag != nil {
		activeOnly = *flag
	}

	filter := announcement.AnnouncementFilter{
		ActiveOnly: activeOnly,
		Priority:   queryString(r, "priority"),
		Page:       page,
		Limit:      limit,
	}

	announcements, total, err := h.announcementService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithPagination(w, announcements, response.NewPagination(page, limit, total))
}

// Update implements AnnouncementHandler.
func (h *AnnouncementHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req announcement.UpdateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.announcementService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Delete implements AnnouncementHandler.
func (h *AnnouncementHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.announcementService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}
