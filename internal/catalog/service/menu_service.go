package service

import (
	"context"

	"brewline/internal/domain"
)

type Repository interface {
	ListAll(ctx context.Context) ([]domain.MenuItem, error)
	ListAvailable(ctx context.Context) ([]domain.MenuItem, error)
	ListByCategory(ctx context.Context, categoryID int) ([]domain.MenuItem, error)
}

type MenuService struct {
	repo Repository
}

func NewMenuService(repo Repository) *MenuService {
	return &MenuService{repo: repo}
}

func (s *MenuService) ListAll(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.ListAll(ctx)
}

func (s *MenuService) ListAvailable(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *MenuService) ListByCategory(ctx context.Context, categoryID int) ([]domain.MenuItem, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}
