package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type SummaryHandler interface {
	Regenerate(w http.ResponseWriter, r *http.Request)
	RegenerateAll(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	summaryService summary.SummaryService
}

func NewSummaryHandler(summaryService summary.SummaryService) SummaryHandler {
	return &summaryHandlerImpl{
		summaryService: summaryService,
	}
}

// Regenerate implements SummaryHandler.
func (h *summaryHandlerImpl) Regenerate(w http.ResponseWriter, r *http.Request) {
	var req summary.RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.summaryService.RegenerateMonthlySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly summary regenerated successfully", result)
}

type regenerateAllRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// RegenerateAll implements SummaryHandler.
func (h *summaryHandlerImpl) RegenerateAll(w http.ResponseWriter, r *http.Request) {
	var req regenerateAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.summaryService.RegenerateAll(r.Context(), req.Year, req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Batch(w, "Monthly summaries regenerated", result.Errors, result)
}

// Get implements SummaryHandler.
func (h *summaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	req := summary.GetSummaryRequest{EmployeeID: chi.URLParam(r, "employeeID")}

	var errs validator.ValidationErrors
	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
		}
		req.Year = year
	}
	if m := r.URL.Query().Get("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
		}
		req.Month = month
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.summaryService.GetMonthlySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
