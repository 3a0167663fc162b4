package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/oaknest/storefront/internal/domain"
	"github.com/oaknest/storefront/internal/repository"
)

type DepartmentService struct {
	repo repository.DepartmentRepository
}

func NewDepartmentService(repo repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{repo: repo}
}

func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	return s.repo.List(ctx)
}

func (s *DepartmentService) Create(ctx context.Context, name, description string) (*domain.Department, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: department name", ErrNameRequired)
	}

	department := &domain.Department{
		Name:        strings.TrimSpace(name),
		Description: description,
	}

	if err := s.repo.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}
