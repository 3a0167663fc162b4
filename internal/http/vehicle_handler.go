package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/oaknest/storefront/internal/domain"
	"github.com/oaknest/storefront/internal/service"
)

type VehicleHandler struct {
	vehicles *service.VehicleService
	timeout  time.Duration
	log      *zap.SugaredLogger
}

func NewVehicleHandler(vehicles *service.VehicleService, timeout time.Duration, log *zap.SugaredLogger) *VehicleHandler {
	return &VehicleHandler{
		vehicles: vehicles,
		timeout:  timeout,
		log:      log,
	}
}

type VehicleRequestDTO struct {
	Name          string   `json:"vehicleName"`
	Type          string   `json:"vehicleType"`
	Number        string   `json:"vehicleNumber"`
	Capacity      float64  `json:"capacity"`
	Images        []string `json:"vehicleImages"`
	DriverName    string   `json:"driverName"`
	DriverContact string   `json:"driverContact"`
	DriverLicense string   `json:"driverLicense"`
	DriverImage   string   `json:"driverImage"`
	IsAvailable   *bool    `json:"isAvailable"`
}

func (dto VehicleRequestDTO) toInput() service.VehicleInput {
	return service.VehicleInput{
		Name:          dto.Name,
		Type:          domain.VehicleType(dto.Type),
		Number:        dto.Number,
		Capacity:      dto.Capacity,
		Images:        dto.Images,
		DriverName:    dto.DriverName,
		DriverContact: dto.DriverContact,
		DriverLicense: dto.DriverLicense,
		DriverImage:   dto.DriverImage,
		IsAvailable:   dto.IsAvailable,
	}
}

// GET /api/vehicles
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	vehicles, err := h.vehicles.List(ctx)
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, vehicles)
}

// GET /api/vehicles/{id}
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	vehicle, err := h.vehicles.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}

// POST /api/vehicles
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req VehicleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	vehicle, err := h.vehicles.Create(ctx, req.toInput())
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, vehicle)
}

// PUT /api/vehicles/{id}
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req VehicleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	vehicle, err := h.vehicles.Update(ctx, chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}

// DELETE /api/vehicles/{id}
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.vehicles.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "vehicle deleted successfully"})
}

// PATCH /api/vehicles/{id}/toggle-availability
func (h *VehicleHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	vehicle, err := h.vehicles.ToggleAvailability(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}
