package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/oaknest/storefront/internal/auth"
	"github.com/oaknest/storefront/internal/cache"
	"github.com/oaknest/storefront/internal/config"
	"github.com/oaknest/storefront/internal/domain"
	"github.com/oaknest/storefront/internal/repository"
	"github.com/oaknest/storefront/internal/service"
)

const testSecret = "handler-test-secret"

// Map-backed fakes so handler tests can run the real services end to end
// without MongoDB.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]domain.Product
}

func (f *fakeProductRepo) add(p domain.Product) domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = primitive.NewObjectID()
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) ReplaceAll(ctx context.Context, products []domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = make(map[primitive.ObjectID]domain.Product, len(products))
	for i := range products {
		if products[i].ID.IsZero() {
			products[i].ID = primitive.NewObjectID()
		}
		f.products[products[i].ID] = products[i]
	}
	return nil
}

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[primitive.ObjectID]domain.Vehicle
}

func (f *fakeVehicleRepo) add(v domain.Vehicle) domain.Vehicle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	f.vehicles[v.ID] = v
	return v
}

func (f *fakeVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Vehicle, 0, len(f.vehicles))
	for _, v := range f.vehicles {
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return nil, repository.ErrVehicleNotFound
	}
	return &v, nil
}

func (f *fakeVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.ID = primitive.NewObjectID()
	f.vehicles[v.ID] = *v
	return nil
}

func (f *fakeVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.vehicles[v.ID]; !ok {
		return repository.ErrVehicleNotFound
	}
	f.vehicles[v.ID] = *v
	return nil
}

func (f *fakeVehicleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.vehicles[id]; !ok {
		return repository.ErrVehicleNotFound
	}
	delete(f.vehicles, id)
	return nil
}

func (f *fakeVehicleRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return repository.ErrVehicleNotFound
	}
	v.IsAvailable = available
	f.vehicles[id] = v
	return nil
}

func (f *fakeVehicleRepo) Claim(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return repository.ErrVehicleNotFound
	}
	if !v.IsAvailable {
		return repository.ErrVehicleUnavailable
	}
	v.IsAvailable = false
	f.vehicles[id] = v
	return nil
}

func (f *fakeVehicleRepo) Release(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return repository.ErrVehicleNotFound
	}
	v.IsAvailable = true
	f.vehicles[id] = v
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]domain.Order
}

func (f *fakeOrderRepo) add(o domain.Order) domain.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	f.orders[o.ID] = o
	return o
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o.ID = primitive.NewObjectID()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	f.orders[o.ID] = *o
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return &o, nil
}

func (f *fakeOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Order{}
	for _, o := range f.orders {
		if strings.EqualFold(o.Customer.Email, email) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindByCustomerField(ctx context.Context, field, query string, limit int64) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Order{}
	for _, o := range f.orders {
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
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.Status = status
	f.orders[id] = o
	return nil
}

func (f *fakeOrderRepo) SetVehicle(ctx context.Context, orderID, vehicleID primitive.ObjectID, notes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.VehicleID = vehicleID
	o.DeliveryNotes = notes
	f.orders[orderID] = o
	return nil
}

func (f *fakeOrderRepo) ClearVehicle(ctx context.Context, orderID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.VehicleID = primitive.NilObjectID
	o.DeliveryNotes = ""
	f.orders[orderID] = o
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := f.users[key]; ok {
		return repository.ErrDuplicateEmail
	}
	u.ID = primitive.NewObjectID()
	f.users[key] = *u
	return nil
}

type fakeDepartmentRepo struct {
	mu          sync.Mutex
	departments []domain.Department
}

func (f *fakeDepartmentRepo) List(ctx context.Context) ([]domain.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Department, len(f.departments))
	copy(out, f.departments)
	return out, nil
}

func (f *fakeDepartmentRepo) Create(ctx context.Context, d *domain.Department) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = primitive.NewObjectID()
	f.departments = append(f.departments, *d)
	return nil
}

type fakeProductCache struct {
	mu      sync.Mutex
	entries map[string]*domain.Product
}

func (f *fakeProductCache) Get(ctx context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.entries[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return p, nil
}

func (f *fakeProductCache) Set(ctx context.Context, id string, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[id] = product
	return nil
}

func (f *fakeProductCache) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, id)
	return nil
}

// testEnv wires the real router and services over the fakes.
type testEnv struct {
	router   http.Handler
	products *fakeProductRepo
	vehicles *fakeVehicleRepo
	orders   *fakeOrderRepo
	users    *fakeUserRepo
}

func newTestEnv() *testEnv {
	log := zap.NewNop().Sugar()

	products := &fakeProductRepo{products: make(map[primitive.ObjectID]domain.Product)}
	vehicles := &fakeVehicleRepo{vehicles: make(map[primitive.ObjectID]domain.Vehicle)}
	orders := &fakeOrderRepo{orders: make(map[primitive.ObjectID]domain.Order)}
	users := &fakeUserRepo{users: make(map[string]domain.User)}
	departments := &fakeDepartmentRepo{}

	productService := service.NewProductService(products, &fakeProductCache{entries: make(map[string]*domain.Product)}, log)
	vehicleService := service.NewVehicleService(vehicles, log)
	orderService := service.NewOrderService(orders, products, vehicles, log)

	timeout := 5 * time.Second
	router := NewRouter(
		RouterConfig{JWTSecret: testSecret, RequestTimeout: timeout, Log: log},
		Handlers{
			Orders:   NewOrderHandler(orderService, timeout, log),
			Products: NewProductHandler(productService, timeout, log),
			Vehicles: NewVehicleHandler(vehicleService, timeout, log),
			Users:    NewUserHandler(service.NewUserService(users, authConfig(), log), timeout, log),
			Departments: NewDepartmentHandler(
				service.NewDepartmentService(departments), timeout, log),
		},
	)

	return &testEnv{
		router:   router,
		products: products,
		vehicles: vehicles,
		orders:   orders,
		users:    users,
	}
}

func authConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour}
}

func adminToken() string {
	token, _ := auth.GenerateToken(testSecret, "admin@example.com", "Admin", true, time.Hour)
	return token
}

func customerToken() string {
	token, _ := auth.GenerateToken(testSecret, "jordan@example.com", "Jordan", false, time.Hour)
	return token
}
