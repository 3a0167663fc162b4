package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/oaknest/storefront/internal/service"
)

type DepartmentHandler struct {
	departments *service.DepartmentService
	timeout     time.Duration
	log         *zap.SugaredLogger
}

func NewDepartmentHandler(departments *service.DepartmentService, timeout time.Duration, log *zap.SugaredLogger) *DepartmentHandler {
	return &DepartmentHandler{
		departments: departments,
		timeout:     timeout,
		log:         log,
	}
}

type DepartmentRequestDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GET /api/departments
func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	departments, err := h.departments.List(ctx)
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, departments)
}

// POST /api/departments
func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req DepartmentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	department, err := h.departments.Create(ctx, req.Name, req.Description)
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, department)
}
