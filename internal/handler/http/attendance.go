package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
	RecordManual(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	ProcessPending(w http.ResponseWriter, r *http.Request)
	Penalties(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Compute implements AttendanceHandler.
func (h *attendanceHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	var req attendance.ComputeDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.ComputeDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RecordManual implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecordManual(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.RecordManualEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual attendance recorded successfully", result)
}

// Process implements AttendanceHandler.
func (h *attendanceHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	var req attendance.ProcessDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.ProcessDeviceDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance processed successfully", result)
}

type processPendingRequest struct {
	Date string `json:"date"`
}

// ProcessPending implements AttendanceHandler.
func (h *attendanceHandlerImpl) ProcessPending(w http.ResponseWriter, r *http.Request) {
	var req processPendingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	date, ok := validator.IsValidDate(req.Date)
	if !ok {
		response.HandleError(w, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}})
		return
	}

	result, err := h.attendanceService.ProcessPendingDays(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Batch(w, "Pending attendance days processed", result.Errors, result)
}

// Penalties implements AttendanceHandler.
func (h *attendanceHandlerImpl) Penalties(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := chi.URLParam(r, "date")

	result, err := h.attendanceService.EvaluatePenalties(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
