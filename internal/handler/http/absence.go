package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrsuite/hr-backend-go/internal/domain/absence"
	"github.com/hrsuite/hr-backend-go/internal/handler/http/response"
)

// maxJustificationFileSize caps uploaded justification documents at 5 MiB.
const maxJustificationFileSize = 5 << 20

type AbsenceHandler interface {
	Declare(w http.ResponseWriter, r *http.Request)
	SubmitJustification(w http.ResponseWriter, r *http.Request)
	ProcessJustification(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AbsenceHandlerImpl struct {
	absenceService absence.Service
}

func NewAbsenceHandler(absenceService absence.Service) AbsenceHandler {
	return &AbsenceHandlerImpl{absenceService: absenceService}
}

// Declare implements AbsenceHandler. Manager and admin RH only.
func (h *AbsenceHandlerImpl) Declare(w http.ResponseWriter, r *http.Request) {
	var req absence.DeclareAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.absenceService.Declare(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, created)
}

// SubmitJustification implements AbsenceHandler. Accepts multipart
// form data with an optional file part named "file" and an optional
// "comment" field.
func (h *AbsenceHandlerImpl) SubmitJustification(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxJustificationFileSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := absence.SubmitJustificationRequest{
		AbsenceID: chi.URLParam(r, "id"),
	}

	if comment := r.FormValue("comment"); comment != "" {
		req.Comment = &comment
	}

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		req.File = file
		req.FileHeader = header
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.absenceService.SubmitJustification(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// ProcessJustification implements AbsenceHandler. Manager and admin RH only.
func (h *AbsenceHandlerImpl) ProcessJustification(w http.ResponseWriter, r *http.Request) {
	var req absence.ProcessJustificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.AbsenceID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.absenceService.ProcessJustification(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Get implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.absenceService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements AbsenceHandler.
func (h *AbsenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, 20)

	filter := absence.AbsenceFilter{
		EmployeeID: queryString(r, "employeeId"),
		Status:     queryString(r, "status"),
		DateStart:  queryString(r, "dateStart"),
		DateEnd:    queryString(r, "dateEnd"),
		Page:       page,
		Limit:      limit,
	}

	absences, total, err := h.absenceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithPagination(w, absences, response.NewPagination(page, limit, total))
}
