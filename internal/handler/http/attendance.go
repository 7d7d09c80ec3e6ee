package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hrsuite/hr-backend-go/internal/domain/attendance"
	"github.com/hrsuite/hr-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Record(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	DailySummary(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// decodeRecordRequest tolerates an empty body: check-in and check-out
// work without a payload.
func decodeRecordRequest(r *http.Request) (attendance.RecordRequest, error) {
	var req attendance.RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		return attendance.RecordRequest{}, err
	}
	return req, nil
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRecordRequest(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, record)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRecordRequest(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// Record implements AttendanceHandler. Combined endpoint: checks in
// when today has no check-in yet, otherwise checks out.
func (h *AttendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRecordRequest(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.CheckIn(r.Context(), req)
	if err == nil {
		response.Created(w, record)
		return
	}
	if !errors.Is(err, attendance.ErrAlreadyCheckedIn) {
		response.HandleError(w, err)
		return
	}

	record, err = h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// GetToday implements AttendanceHandler. Returns null data when
// nothing was recorded yet today.
func (h *AttendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.GetToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// GetMyAttendance implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, 31)

	filter := attendance.MyAttendanceFilter{
		StartDate: queryString(r, "startDate"),
		EndDate:   queryString(r, "endDate"),
		Status:    queryString(r, "status"),
		Page:      page,
		Limit:     limit,
	}

	records, total, err := h.attendanceService.GetMyAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithPagination(w, records, response.NewPagination(page, limit, total))
}

// List implements AttendanceHandler. Manager and admin RH only.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, 20)

	filter := attendance.AttendanceFilter{
		EmployeeID: queryString(r, "employeeId"),
		StartDate:  queryString(r, "startDate"),
		EndDate:    queryString(r, "endDate"),
		Status:     queryString(r, "status"),
		Page:       page,
		Limit:      limit,
	}

	records, total, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithPagination(w, records, response.NewPagination(page, limit, total))
}

// DailySummary implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DailySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.attendanceService.DailySummary(r.Context(), queryString(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
