package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oaknest/storefront/internal/domain"
	"github.com/oaknest/storefront/internal/repository"
)

// callLog records cross-repository call ordering so tests can assert on
// side-effect sequencing (e.g. vehicle released before status persisted).
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) record(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.calls))
	copy(out, l.calls)
	return out
}

type mockProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]domain.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[primitive.ObjectID]domain.Product)}
}

func (m *mockProductRepo) add(p domain.Product) domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.products[p.ID] = p
	return p
}

func (m *mockProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	m.products[p.ID] = *p
	return nil
}

func (m *mockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[p.ID] = *p
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) ReplaceAll(ctx context.Context, products []domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = make(map[primitive.ObjectID]domain.Product, len(products))
	for i := range products {
		if products[i].ID.IsZero() {
			products[i].ID = primitive.NewObjectID()
		}
		m.products[products[i].ID] = products[i]
	}
	return nil
}

type mockVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[primitive.ObjectID]domain.Vehicle
	log      *callLog
}

func newMockVehicleRepo(log *callLog) *mockVehicleRepo {
	return &mockVehicleRepo{
		vehicles: make(map[primitive.ObjectID]domain.Vehicle),
		log:      log,
	}
}

func (m *mockVehicleRepo) add(v domain.Vehicle) domain.Vehicle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	m.vehicles[v.ID] = v
	return v
}

func (m *mockVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		out = append(out, v)
	}
	return out, nil
}

func (m *mockVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrVehicleNotFound
	}
	return &v, nil
}

func (m *mockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v.ID = primitive.NewObjectID()
	m.vehicles[v.ID] = *v
	return nil
}

func (m *mockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[v.ID]; !ok {
		return repository.ErrVehicleNotFound
	}
	m.vehicles[v.ID] = *v
	return nil
}

func (m *mockVehicleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[id]; !ok {
		return repository.ErrVehicleNotFound
	}
	delete(m.vehicles, id)
	return nil
}

func (m *mockVehicleRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return repository.ErrVehicleNotFound
	}
	v.IsAvailable = available
	m.vehicles[id] = v
	return nil
}

func (m *mockVehicleRepo) Claim(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.log != nil {
		m.log.record("claim:" + id.Hex())
	}
	v, ok := m.vehicles[id]
	if !ok {
		return repository.ErrVehicleNotFound
	}
	if !v.IsAvailable {
		return repository.ErrVehicleUnavailable
	}
	v.IsAvailable = false
	m.vehicles[id] = v
	return nil
}

func (m *mockVehicleRepo) Release(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.log != nil {
		m.log.record("release:" + id.Hex())
	}
	v, ok := m.vehicles[id]
	if !ok {
		return repository.ErrVehicleNotFound
	}
	v.IsAvailable = true
	m.vehicles[id] = v
	return nil
}

type mockOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]domain.Order
	log    *callLog
}

func newMockOrderRepo(log *callLog) *mockOrderRepo {
	return &mockOrderRepo{
		orders: make(map[primitive.ObjectID]domain.Order),
		log:    log,
	}
}

func (m *mockOrderRepo) add(o domain.Order) domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	m.orders[o.ID] = o
	return o
}

func (m *mockOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = primitive.NewObjectID()
	m.orders[o.ID] = *o
	return nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return &o, nil
}

func (m *mockOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockOrderRepo) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Order{}
	for _, o := range m.orders {
		if strings.EqualFold(o.Customer.Email, email) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) FindByCustomerField(ctx context.Context, field, query string, limit int64) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Order{}
	for _, o := range m.orders {
		var value string
		switch field {
		case "email":
			value = o.Customer.Email
		case "name":
			value = o.Customer.Name
		case "phone":
			value = o.Customer.Phone
		}
		if strings.Contains(strings.ToLower(value), strings.ToLower(query)) {
			out = append(out, o)
		}
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.log != nil {
		m.log.record("status:" + status.String())
	}
	o, ok := m.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.Status = status
	m.orders[id] = o
	return nil
}

func (m *mockOrderRepo) SetVehicle(ctx context.Context, orderID, vehicleID primitive.ObjectID, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.log != nil {
		m.log.record("set-vehicle:" + vehicleID.Hex())
	}
	o, ok := m.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.VehicleID = vehicleID
	o.DeliveryNotes = notes
	m.orders[orderID] = o
	return nil
}

func (m *mockOrderRepo) ClearVehicle(ctx context.Context, orderID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.VehicleID = primitive.NilObjectID
	o.DeliveryNotes = ""
	m.orders[orderID] = o
	return nil
}

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]domain.User)}
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := m.users[key]; ok {
		return repository.ErrDuplicateEmail
	}
	u.ID = primitive.NewObjectID()
	m.users[key] = *u
	return nil
}
