package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/schoolhealth-backend/internal/middleware"
	"github.com/stemsi/schoolhealth-backend/internal/model"
	"github.com/stemsi/schoolhealth-backend/internal/response"
	"github.com/stemsi/schoolhealth-backend/internal/service"
	"github.com/stemsi/schoolhealth-backend/internal/validator"
)

// HealthHandler serves student health records and medicine requests.
type HealthHandler struct {
	healthService *service.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// ListStudentHealth godoc
// GET /api/v1/students/health
func (h *HealthHandler) ListStudentHealth(c *gin.Context) {
	identity := middleware.GetSession(c).Identity()
	records, err := h.healthService.ListStudentHealth(c.Request.Context(), identity)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": records})
}

// ListMedicineRequests godoc
// GET /api/v1/medicine/requests
func (h *HealthHandler) ListMedicineRequests(c *gin.Context) {
	identity := middleware.GetSession(c).Identity()
	requests, err := h.healthService.ListMedicineRequests(c.Request.Context(), identity)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// SubmitMedicineRequest godoc
// POST /api/v1/medicine/requests
func (h *HealthHandler) SubmitMedicineRequest(c *gin.Context) {
	var req model.SubmitMedicineRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	identity := middleware.GetSession(c).Identity()
	created, err := h.healthService.SubmitMedicineRequest(c.Request.Context(), identity, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"request": created})
}

// ReviewMedicineRequest godoc
// PATCH /api/v1/medicine/requests/:id
func (h *HealthHandler) ReviewMedicineRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"id": "id must be a positive integer",
		})
		return
	}

	var req model.ReviewMedicineRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	identity := middleware.GetSession(c).Identity()
	updated, err := h.healthService.ReviewMedicineRequest(c.Request.Context(), identity, id, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": updated})
}

func (h *HealthHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecordNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNotRecordOwner):
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
	case errors.Is(err, service.ErrAlreadyReviewed):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
