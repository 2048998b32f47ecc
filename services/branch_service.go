package services

import (
	"context"

	"foodcart/entity"
	"foodcart/pkg/apperr"
	"foodcart/repository"
)

type BranchService struct {
	Repo *repository.BranchRepository
}

func NewBranchService(repo *repository.BranchRepository) *BranchService {
	return &BranchService{Repo: repo}
}

// ListActive feeds the pickup step; inactive branches are never offered.
func (s *BranchService) ListActive(ctx context.Context) ([]entity.Branch, error) {
	out, err := s.Repo.ListActive(ctx)
	if err != nil {
		return nil, apperr.FromRead("branches", err)
	}
	return out, nil
}
