package services

import (
	"context"

	"foodcart/entity"
	"foodcart/pkg/apperr"
	"foodcart/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type MenuService struct {
	Repo *repository.MenuItemRepository
}

func NewMenuService(repo *repository.MenuItemRepository) *MenuService {
	return &MenuService{Repo: repo}
}

type MenuPage struct {
	Items  []entity.MenuItem `json:"items"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

func (s *MenuService) List(ctx context.Context, categoryID uint, limit, offset int) (MenuPage, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	items, total, err := s.Repo.List(ctx, categoryID, limit, offset)
	if err != nil {
		return MenuPage{}, apperr.FromRead("menu", err)
	}
	return MenuPage{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *MenuService) Get(ctx context.Context, id uint) (*entity.MenuItem, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.FromRead("menu item", err)
	}
	return m, nil
}

func (s *MenuService) Categories(ctx context.Context) ([]entity.Category, error) {
	out, err := s.Repo.ListCategories(ctx)
	if err != nil {
		return nil, apperr.FromRead("categories", err)
	}
	return out, nil
}
