package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/oaknest/storefront/internal/domain"
	"github.com/oaknest/storefront/internal/report"
	"github.com/oaknest/storefront/internal/service"
)

type OrderHandler struct {
	orders  *service.OrderService
	timeout time.Duration
	log     *zap.SugaredLogger
}

func NewOrderHandler(orders *service.OrderService, timeout time.Duration, log *zap.SugaredLogger) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		timeout: timeout,
		log:     log,
	}
}

type CustomerDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CheckoutItemDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequestDTO struct {
	Customer CustomerDTO       `json:"customer"`
	Items    []CheckoutItemDTO `json:"items"`
	// The storefront UI sends the cart selection under this key.
	SelectedItems []CheckoutItemDTO `json:"selectedItems"`
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

type CancelOrderRequestDTO struct {
	Email string `json:"email"`
}

type AssignVehicleRequestDTO struct {
	VehicleID     string `json:"vehicleId"`
	DeliveryNotes string `json:"deliveryNotes"`
}

// POST /api/orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	items := req.Items
	if len(items) == 0 {
		items = req.SelectedItems
	}

	in := service.CheckoutInput{
		Customer: domain.Customer{
			Name:    req.Customer.Name,
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
		},
	}
	for _, item := range items {
		in.Items = append(in.Items, service.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orders.Checkout(ctx, in)
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// GET /api/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.ListOrders(ctx)
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// GET /api/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.orders.GetOrder(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// GET /api/orders/user/{email}
func (h *OrderHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.ListOrdersByEmail(ctx, chi.URLParam(r, "email"))
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// PATCH /api/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.UpdateStatus(ctx, chi.URLParam(r, "id"), domain.OrderStatus(req.Status))
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// POST /api/orders/{id}/cancel
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CancelOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.CancelByCustomer(ctx, chi.URLParam(r, "id"), req.Email)
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// PATCH /api/orders/{id}/assign-vehicle
func (h *OrderHandler) AssignVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AssignVehicleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.AssignVehicle(ctx, chi.URLParam(r, "id"), req.VehicleID, req.DeliveryNotes)
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// DELETE /api/orders/{id}/unassign-vehicle
func (h *OrderHandler) UnassignVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.orders.UnassignVehicle(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// GET /api/orders/search?query=
func (h *OrderHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.Search(ctx, r.URL.Query().Get("query"))
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// GET /api/orders/report?query=
//
// Streams the rendered PDF. The renderer buffers the whole document before
// writing, so a generation failure can still produce a proper error
// response; once bytes are on the wire, a failure just ends the stream.
func (h *OrderHandler) Report(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	query := r.URL.Query().Get("query")
	orders, err := h.orders.Search(ctx, query)
	if err != nil {
		handleServiceError(h.log, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="orders-report.pdf"`)

	cw := &countingWriter{w: w}
	if err := report.Orders(cw, orders, query, time.Now()); err != nil {
		if cw.n == 0 {
			w.Header().Del("Content-Disposition")
			handleServiceError(h.log, w, err)
			return
		}
		// Mid-stream failure; the truncated output is the signal.
		h.log.Warnw("report stream aborted", "request_id", getRequestID(r.Context()), "err", err)
	}
}

type countingWriter struct {
	w http.ResponseWriter
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
