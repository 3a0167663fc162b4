package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/oaknest/storefront/internal/cache"
	"github.com/oaknest/storefront/internal/domain"
	"github.com/oaknest/storefront/internal/repository"
)

type ProductService struct {
	repo  repository.ProductRepository
	cache cache.ProductCache
	log   *zap.SugaredLogger
	sfg   singleflight.Group // Prevents cache stampede on hot products
}

func NewProductService(repo repository.ProductRepository, cache cache.ProductCache, log *zap.SugaredLogger) *ProductService {
	return &ProductService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Get reads through the cache. Concurrent misses for the same product are
// collapsed by singleflight into one repository lookup.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	key := oid.Hex()

	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		product, err := s.cache.Get(ctx, key)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warnw("cache get error", "product", key, "err", err)
		}

		product, err = s.repo.GetByID(ctx, oid)
		if err != nil {
			return nil, err
		}

		go func() {
			cacheCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(cacheCtx, key, product); err != nil {
				s.log.Warnw("cache set error", "product", key, "err", err)
			}
		}()

		return product, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	InStock     *bool
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: product name", ErrNameRequired)
	}
	if in.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	// In stock by default, matching the storefront's listing flow.
	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}

	product := &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		InStock:     inStock,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	// An omitted flag keeps the current stock state; a PUT without inStock
	// must not put an out-of-stock product back on sale.
	inStock := current.InStock
	if in.InStock != nil {
		inStock = *in.InStock
	}

	product := &domain.Product{
		ID:          oid,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		InStock:     inStock,
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(oid.Hex())

	return s.repo.GetByID(ctx, oid)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		return err
	}
	s.invalidate(oid.Hex())
	return nil
}

// Seed replaces the catalog with the stock furniture set. Existing cache
// entries are invalidated so deleted products do not linger until TTL.
func (s *ProductService) Seed(ctx context.Context) ([]domain.Product, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	products := defaultCatalog()
	if err := s.repo.ReplaceAll(ctx, products); err != nil {
		return nil, err
	}

	for _, p := range existing {
		s.invalidate(p.ID.Hex())
	}

	return s.repo.List(ctx)
}

func (s *ProductService) invalidate(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warnw("cache invalidate error", "product", id, "err", err)
	}
}

func defaultCatalog() []domain.Product {
	return []domain.Product{
		{
			Name:        "Modern Sofa",
			Description: "A comfortable modern sofa with clean lines and durable fabric.",
			Price:       899.99,
			Category:    "Sofa",
			ImageURL:    "https://images.unsplash.com/photo-1555041469-a586c61ea9bc",
			InStock:     true,
		},
		{
			Name:        "Wooden Dining Table",
			Description: "Solid oak dining table that seats 6 people comfortably.",
			Price:       649.99,
			Category:    "Table",
			ImageURL:    "https://images.unsplash.com/photo-1533090368676-1fd25485db88",
			InStock:     true,
		},
		{
			Name:        "Ergonomic Office Chair",
			Description: "Adjustable office chair with lumbar support and breathable mesh back.",
			Price:       249.99,
			Category:    "Chair",
			ImageURL:    "https://images.unsplash.com/photo-1585487000160-6ebcfceb0d03",
			InStock:     true,
		},
		{
			Name:        "King Size Bed Frame",
			Description: "Modern platform bed frame with headboard, king size.",
			Price:       799.99,
			Category:    "Bed",
			ImageURL:    "https://images.unsplash.com/photo-1505693416388-ac5ce068fe85",
			InStock:     true,
		},
		{
			Name:        "Bookshelf with Storage",
			Description: "5-tier bookshelf with additional storage cabinets at the bottom.",
			Price:       329.99,
			Category:    "Bookshelf",
			ImageURL:    "https://images.unsplash.com/photo-1588095952717-d7236ce22035",
			InStock:     true,
		},
		{
			Name:        "Accent Cabinet",
			Description: "Modern accent cabinet with glass doors and internal lighting.",
			Price:       429.99,
			Category:    "Cabinet",
			ImageURL:    "https://images.unsplash.com/photo-1601760561441-16420502c7e0",
			InStock:     true,
		},
	}
}
