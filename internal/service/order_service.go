package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/oaknest/storefront/internal/domain"
	"github.com/oaknest/storefront/internal/repository"
)

const (
	// Customers may self-cancel for three days after placing an order.
	cancelWindow = 72 * time.Hour

	// Free-text search is capped so a broad query cannot drag the whole
	// collection through the expansion step.
	searchLimit = 50
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	vehicles repository.VehicleRepository
	log      *zap.SugaredLogger
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository,
	vehicles repository.VehicleRepository, log *zap.SugaredLogger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		vehicles: vehicles,
		log:      log,
	}
}

type CheckoutItem struct {
	ProductID string
	Quantity  int
}

type CheckoutInput struct {
	Customer domain.Customer
	Items    []CheckoutItem
}

// Checkout validates every requested item against the catalog and creates the
// order in one shot. Any invalid item aborts the whole request; no partial
// order is ever written. Prices are snapshotted at this moment and the total
// is never recomputed.
func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}
	if !emailPattern.MatchString(in.Customer.Email) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, in.Customer.Email)
	}

	var total float64
	items := make([]domain.OrderItem, 0, len(in.Items))

	for _, req := range in.Items {
		if req.Quantity < 1 {
			return nil, fmt.Errorf("%w (product %s)", ErrInvalidQuantity, req.ProductID)
		}

		id, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product id %q", ErrInvalidID, req.ProductID)
		}

		product, err := s.products.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: %s", repository.ErrProductNotFound, req.ProductID)
			}
			return nil, err
		}

		// Stock is a gate, not a counter; nothing is decremented here.
		if !product.InStock {
			return nil, fmt.Errorf("%w: %s", ErrOutOfStock, product.Name)
		}

		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  req.Quantity,
			Price:     product.Price,
		})
		total += product.Price * float64(req.Quantity)
	}

	order := &domain.Order{
		Customer:    in.Customer,
		Items:       items,
		TotalAmount: total,
		Status:      domain.OrderStatusPending,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	return s.expand(ctx, order), nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, order), nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.expandAll(ctx, orders), nil
}

func (s *OrderService) ListOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}

	orders, err := s.orders.ListByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	return s.expandAll(ctx, orders), nil
}

// UpdateStatus applies an admin status change. Any status may move to any
// other status; admin tooling uses that to correct mistakes. The one coupled
// side effect: moving into Cancelled releases an assigned vehicle, and the
// release happens before the status is persisted so no reader ever sees a
// cancelled order still holding its vehicle.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	// A cancelled order keeps its vehicle reference as a historical record;
	// only the availability flag is returned to the pool.
	if status == domain.OrderStatusCancelled && order.HasVehicle() {
		if err := s.vehicles.Release(ctx, order.VehicleID); err != nil {
			return nil, fmt.Errorf("failed to release vehicle %s: %w", order.VehicleID.Hex(), err)
		}
	}

	if err := s.orders.UpdateStatus(ctx, oid, status); err != nil {
		return nil, err
	}
	order.Status = status

	return s.expand(ctx, order), nil
}

// CancelByCustomer is the public self-service cancellation path, distinct
// from the admin status transition. Checks run in a fixed order so each
// failure mode is distinguishable: not found, wrong email, terminal status,
// expired window.
func (s *OrderService) CancelByCustomer(ctx context.Context, id, email string) (*domain.Order, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(strings.TrimSpace(email), order.Customer.Email) {
		return nil, ErrEmailMismatch
	}

	if !order.Status.Cancellable() {
		return nil, fmt.Errorf("%w (current status: %s)", ErrNotCancellable, order.Status)
	}

	if time.Since(order.CreatedAt) > cancelWindow {
		return nil, ErrCancelWindowExpired
	}

	// Release before persisting the cancellation, same ordering as the
	// admin path. The vehicle reference stays on the order for history.
	if order.HasVehicle() {
		if err := s.vehicles.Release(ctx, order.VehicleID); err != nil {
			return nil, fmt.Errorf("failed to release vehicle %s: %w", order.VehicleID.Hex(), err)
		}
	}

	if err := s.orders.UpdateStatus(ctx, oid, domain.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatusCancelled

	return s.expand(ctx, order), nil
}

// AssignVehicle points the order at a vehicle and flips availability flags in
// lockstep. The claim on the new vehicle is a conditional update, so two
// concurrent assignments cannot both win it. Assigning the vehicle the order
// already holds is a release-then-claim of the same vehicle, a no-op in
// effect.
func (s *OrderService) AssignVehicle(ctx context.Context, orderID, vehicleID, notes string) (*domain.Order, error) {
	if strings.TrimSpace(vehicleID) == "" {
		return nil, ErrVehicleIDRequired
	}

	vid, err := parseID(vehicleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.vehicles.GetByID(ctx, vid); err != nil {
		return nil, err
	}

	oid, err := parseID(orderID)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if order.VehicleID == vid {
		if err := s.vehicles.Release(ctx, vid); err != nil {
			return nil, err
		}
	}

	if err := s.vehicles.Claim(ctx, vid); err != nil {
		return nil, err
	}

	if order.HasVehicle() && order.VehicleID != vid {
		if err := s.vehicles.Release(ctx, order.VehicleID); err != nil {
			return nil, fmt.Errorf("failed to release previous vehicle %s: %w", order.VehicleID.Hex(), err)
		}
	}

	if err := s.orders.SetVehicle(ctx, oid, vid, notes); err != nil {
		return nil, err
	}
	order.VehicleID = vid
	order.DeliveryNotes = notes

	return s.expand(ctx, order), nil
}

func (s *OrderService) UnassignVehicle(ctx context.Context, orderID string) (*domain.Order, error) {
	oid, err := parseID(orderID)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if !order.HasVehicle() {
		return nil, ErrNoVehicleAssigned
	}

	if err := s.vehicles.Release(ctx, order.VehicleID); err != nil {
		return nil, fmt.Errorf("failed to release vehicle %s: %w", order.VehicleID.Hex(), err)
	}

	if err := s.orders.ClearVehicle(ctx, oid); err != nil {
		return nil, err
	}
	order.VehicleID = primitive.NilObjectID
	order.DeliveryNotes = ""

	return s.expand(ctx, order), nil
}

// Search resolves a free-text query against fixed tiers: an id-shaped query
// is tried as an order id first, then partial case-insensitive matches on
// customer email, name and phone. The first tier with results wins; later
// tiers are never consulted. Clients depend on this precedence.
func (s *OrderService) Search(ctx context.Context, query string) ([]domain.Order, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListOrders(ctx)
	}

	if oid, err := primitive.ObjectIDFromHex(query); err == nil {
		order, err := s.orders.GetByID(ctx, oid)
		if err == nil {
			return s.expandAll(ctx, []domain.Order{*order}), nil
		}
		if !errors.Is(err, repository.ErrOrderNotFound) {
			return nil, err
		}
		// Fall through to the customer-field tiers.
	}

	for _, field := range []string{"email", "name", "phone"} {
		orders, err := s.orders.FindByCustomerField(ctx, field, query, searchLimit)
		if err != nil {
			return nil, err
		}
		if len(orders) > 0 {
			return s.expandAll(ctx, orders), nil
		}
	}

	return []domain.Order{}, nil
}

// expand resolves item product references and the assigned vehicle to full
// records. A product deleted since the order was placed just stays a bare
// reference; the snapshot price and quantity are already on the item.
func (s *OrderService) expand(ctx context.Context, order *domain.Order) *domain.Order {
	for i := range order.Items {
		product, err := s.products.GetByID(ctx, order.Items[i].ProductID)
		if err != nil {
			if !errors.Is(err, repository.ErrProductNotFound) {
				s.log.Warnw("failed to expand order item", "order", order.ID.Hex(), "product", order.Items[i].ProductID.Hex(), "err", err)
			}
			continue
		}
		order.Items[i].Product = product
	}

	if order.HasVehicle() {
		vehicle, err := s.vehicles.GetByID(ctx, order.VehicleID)
		if err != nil {
			if !errors.Is(err, repository.ErrVehicleNotFound) {
				s.log.Warnw("failed to expand order vehicle", "order", order.ID.Hex(), "vehicle", order.VehicleID.Hex(), "err", err)
			}
		} else {
			order.Vehicle = vehicle
		}
	}

	return order
}

func (s *OrderService) expandAll(ctx context.Context, orders []domain.Order) []domain.Order {
	for i := range orders {
		s.expand(ctx, &orders[i])
	}
	return orders
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
