package services

import (
	"context"

	"foodcart/entity"
	"foodcart/pkg/apperr"
	"foodcart/repository"
)

type FavoriteService struct {
	Repo *repository.FavoriteRepository
	Menu *repository.MenuItemRepository
}

func NewFavoriteService(repo *repository.FavoriteRepository, menu *repository.MenuItemRepository) *FavoriteService {
	return &FavoriteService{Repo: repo, Menu: menu}
}

func (s *FavoriteService) List(ctx context.Context, userID uint) ([]entity.Favorite, error) {
	out, err := s.Repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.FromRead("favorites", err)
	}
	return out, nil
}

func (s *FavoriteService) Add(ctx context.Context, userID, menuItemID uint) error {
	if _, err := s.Menu.FindByID(ctx, menuItemID); err != nil {
		return apperr.FromRead("menu item", err)
	}
	return apperr.FromWrite("favorite", s.Repo.Add(ctx, userID, menuItemID))
}

func (s *FavoriteService) Remove(ctx context.Context, userID, menuItemID uint) error {
	return apperr.FromWrite("favorite", s.Repo.Remove(ctx, userID, menuItemID))
}
