package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/correction"
	"github.com/developnetgeometry/unity-hrms-go/internal/handler/http/response"
)

type CorrectionHandler interface {
	Handle(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type correctionHandlerImpl struct {
	correctionService correction.CorrectionService
}

func NewCorrectionHandler(correctionService correction.CorrectionService) CorrectionHandler {
	return &correctionHandlerImpl{
		correctionService: correctionService,
	}
}

// Handle dispatches POST /corrections: a plain post submits a new request,
// ?action=review records a decision on an existing one.
func (h *correctionHandlerImpl) Handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("action") == "review" {
		h.review(w, r)
		return
	}
	h.submit(w, r)
}

func (h *correctionHandlerImpl) submit(w http.ResponseWriter, r *http.Request) {
	var req correction.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.correctionService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction request submitted", result)
}

func (h *correctionHandlerImpl) review(w http.ResponseWriter, r *http.Request) {
	var req correction.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.correctionService.Review(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction request reviewed", result)
}

// List implements CorrectionHandler.
func (h *correctionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := correction.ListFilter{}

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if page := r.URL.Query().Get("page"); page != "" {
		if n, err := strconv.Atoi(page); err == nil {
			filter.Page = n
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			filter.Limit = n
		}
	}

	result, err := h.correctionService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int(result.TotalCount) / result.Limit
	if int(result.TotalCount)%result.Limit > 0 {
		totalPages++
	}

	response.SuccessWithMeta(w, result.Corrections, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}
