package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/oaknest/storefront/internal/domain"
	"github.com/oaknest/storefront/internal/repository"
)

type VehicleService struct {
	repo repository.VehicleRepository
	log  *zap.SugaredLogger
}

func NewVehicleService(repo repository.VehicleRepository, log *zap.SugaredLogger) *VehicleService {
	return &VehicleService{repo: repo, log: log}
}

func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	return s.repo.List(ctx)
}

func (s *VehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, oid)
}

type VehicleInput struct {
	Name          string
	Type          domain.VehicleType
	Number        string
	Capacity      float64
	Images        []string
	DriverName    string
	DriverContact string
	DriverLicense string
	DriverImage   string
	IsAvailable   *bool
}

func (in VehicleInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: vehicle name", ErrNameRequired)
	}
	if strings.TrimSpace(in.Number) == "" {
		return fmt.Errorf("%w: vehicle number", ErrNameRequired)
	}
	if !in.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidVehicleType, in.Type)
	}
	if in.Capacity < 0 {
		return ErrInvalidCapacity
	}
	return nil
}

func (s *VehicleService) Create(ctx context.Context, in VehicleInput) (*domain.Vehicle, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	// New vehicles join the pool available unless stated otherwise.
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	vehicle := &domain.Vehicle{
		Name:          strings.TrimSpace(in.Name),
		Type:          in.Type,
		Number:        strings.TrimSpace(in.Number),
		Capacity:      in.Capacity,
		Images:        in.Images,
		DriverName:    in.DriverName,
		DriverContact: in.DriverContact,
		DriverLicense: in.DriverLicense,
		DriverImage:   in.DriverImage,
		IsAvailable:   available,
	}

	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, id string, in VehicleInput) (*domain.Vehicle, error) {
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

	available := current.IsAvailable
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	vehicle := &domain.Vehicle{
		ID:            oid,
		Name:          strings.TrimSpace(in.Name),
		Type:          in.Type,
		Number:        strings.TrimSpace(in.Number),
		Capacity:      in.Capacity,
		Images:        in.Images,
		DriverName:    in.DriverName,
		DriverContact: in.DriverContact,
		DriverLicense: in.DriverLicense,
		DriverImage:   in.DriverImage,
		IsAvailable:   available,
	}

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *VehicleService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}

// ToggleAvailability flips the availability flag by hand. Admins use it to
// pull a vehicle out of rotation for maintenance or return it to the pool.
func (s *VehicleService) ToggleAvailability(ctx context.Context, id string) (*domain.Vehicle, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetAvailability(ctx, oid, !vehicle.IsAvailable); err != nil {
		return nil, err
	}
	vehicle.IsAvailable = !vehicle.IsAvailable

	return vehicle, nil
}
