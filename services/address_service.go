package services

import (
	"context"
	"strings"

	"foodcart/entity"
	"foodcart/pkg/apperr"
	"foodcart/repository"
)

var ErrAddressFields = apperr.Invalid("name, street and delivery zone are required")

type AddressService struct {
	Repo *repository.AddressRepository
}

func NewAddressService(repo *repository.AddressRepository) *AddressService {
	return &AddressService{Repo: repo}
}

// ----- DTOs from Controller -----
type AddressReq struct {
	Name           string `json:"name"`
	Street         string `json:"street"`
	Notes          string `json:"notes"`
	DeliveryZoneID uint   `json:"deliveryZoneId"`
	IsDefault      bool   `json:"isDefault"`
}

type AddressPatch struct {
	Name           *string `json:"name"`
	Street         *string `json:"street"`
	Notes          *string `json:"notes"`
	DeliveryZoneID *uint   `json:"deliveryZoneId"`
}

func (s *AddressService) List(ctx context.Context, userID uint) ([]entity.Address, error) {
	out, err := s.Repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.FromRead("addresses", err)
	}
	return out, nil
}

func (s *AddressService) Zones(ctx context.Context) ([]entity.DeliveryZone, error) {
	out, err := s.Repo.ListZones(ctx)
	if err != nil {
		return nil, apperr.FromRead("delivery zones", err)
	}
	return out, nil
}

func (s *AddressService) Create(ctx context.Context, userID uint, req AddressReq) (*entity.Address, error) {
	name, street := strings.TrimSpace(req.Name), strings.TrimSpace(req.Street)
	if name == "" || street == "" || req.DeliveryZoneID == 0 {
		return nil, ErrAddressFields
	}
	if _, err := s.Repo.FindZone(ctx, req.DeliveryZoneID); err != nil {
		return nil, apperr.FromRead("delivery zone", err)
	}

	a := &entity.Address{
		UserID:         userID,
		Name:           name,
		Street:         street,
		Notes:          strings.TrimSpace(req.Notes),
		IsDefault:      req.IsDefault,
		DeliveryZoneID: req.DeliveryZoneID,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, apperr.FromWrite("address", err)
	}
	return s.Get(ctx, userID, a.ID)
}

func (s *AddressService) Get(ctx context.Context, userID, id uint) (*entity.Address, error) {
	a, err := s.Repo.FindForUser(ctx, userID, id)
	if err != nil {
		return nil, apperr.FromRead("address", err)
	}
	return a, nil
}

func (s *AddressService) Update(ctx context.Context, userID, id uint, p AddressPatch) (*entity.Address, error) {
	updates := map[string]any{}
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, ErrAddressFields
		}
		updates["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Street != nil {
		if strings.TrimSpace(*p.Street) == "" {
			return nil, ErrAddressFields
		}
		updates["street"] = strings.TrimSpace(*p.Street)
	}
	if p.Notes != nil {
		updates["notes"] = strings.TrimSpace(*p.Notes)
	}
	if p.DeliveryZoneID != nil {
		if _, err := s.Repo.FindZone(ctx, *p.DeliveryZoneID); err != nil {
			return nil, apperr.FromRead("delivery zone", err)
		}
		updates["delivery_zone_id"] = *p.DeliveryZoneID
	}
	if len(updates) == 0 {
		return s.Get(ctx, userID, id)
	}
	if err := s.Repo.Update(ctx, userID, id, updates); err != nil {
		return nil, apperr.FromWrite("address", err)
	}
	return s.Get(ctx, userID, id)
}

func (s *AddressService) SetDefault(ctx context.Context, userID, id uint) error {
	return apperr.FromWrite("address", s.Repo.SetDefault(ctx, userID, id))
}

func (s *AddressService) Delete(ctx context.Context, userID, id uint) error {
	return apperr.FromWrite("address", s.Repo.SoftDelete(ctx, userID, id))
}
