package services

import (
	"context"
	"errors"
	"fmt"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"mandi-service/internal/infrastructure/logging"
	"strings"
)

type adService struct {
	ads      interfaces.AdRepository
	security logging.SecurityLogger
}

func NewAdService(ads interfaces.AdRepository) interfaces.AdService {
	return &adService{ads: ads, security: logging.Security()}
}

// Create posts an ad owned by the caller
func (s *adService) Create(ctx context.Context, who interfaces.Identity, ad entities.Ad) (*entities.Ad, error) {
	ad.Title = strings.TrimSpace(ad.Title)
	ad.State = strings.TrimSpace(ad.State)
	ad.District = strings.TrimSpace(ad.District)
	if ad.Title == "" || ad.State == "" || ad.District == "" || ad.Price.IsZero() {
		return nil, entities.NewValidationError("Title, price, state and district are required")
	}
	if ad.Price.IsNegative() {
		return nil, entities.NewValidationError("Price cannot be negative")
	}

	ad.UserID = who.UserID
	ad.SellerName = who.Username
	created := entities.NewAd(ad)

	if err := s.ads.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create ad: %w", err)
	}
	return created, nil
}

func (s *adService) List(ctx context.Context, filter entities.AdFilter) ([]*entities.Ad, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.State = strings.TrimSpace(filter.State)
	filter.District = strings.TrimSpace(filter.District)
	return s.ads.List(ctx, filter)
}

func (s *adService) Get(ctx context.Context, id string) (*entities.Ad, error) {
	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("%w: Ad not found", entities.ErrNotFound)
		}
		return nil, err
	}
	return ad, nil
}

// Delete removes the ad only when the caller owns it
func (s *adService) Delete(ctx context.Context, who interfaces.Identity, id string) error {
	ad, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if ad.UserID != who.UserID {
		s.security.AccessDenied(ctx, who.UserID, "ad:"+id)
		return fmt.Errorf("%w: Not allowed", entities.ErrForbidden)
	}

	if err := s.ads.Delete(ctx, id); err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return fmt.Errorf("%w: Ad not found", entities.ErrNotFound)
		}
		return fmt.Errorf("failed to delete ad: %w", err)
	}
	return nil
}
