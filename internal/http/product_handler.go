package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/oaknest/storefront/internal/service"
)

type ProductHandler struct {
	products *service.ProductService
	timeout  time.Duration
	log      *zap.SugaredLogger
}

func NewProductHandler(products *service.ProductService, timeout time.Duration, log *zap.SugaredLogger) *ProductHandler {
	return &ProductHandler{
		products: products,
		timeout:  timeout,
		log:      log,
	}
}

type ProductRequestDTO struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	InStock     *bool   `json:"inStock"`
}

func (dto ProductRequestDTO) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		Category:    dto.Category,
		ImageURL:    dto.ImageURL,
		InStock:     dto.InStock,
	}
}

// GET /api/furniture
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.products.List(ctx)
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// GET /api/furniture/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.products.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// POST /api/furniture
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.products.Create(ctx, req.toInput())
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

// PUT /api/furniture/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.products.Update(ctx, chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// DELETE /api/furniture/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.products.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "furniture deleted successfully"})
}

// POST /api/furniture/seed
func (h *ProductHandler) Seed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.products.Seed(ctx)
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, products)
}
