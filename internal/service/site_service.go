package service

import (
	"context"

	"helios/internal/models"
	"helios/internal/money"
	"helios/internal/notifications"
	"helios/internal/repository"
)

// SiteService serves the catalog: listing, detail, and the manual admin
// price update.
type SiteService struct {
	siteRepo repository.SiteRepository
	notifier *notifications.Notifier
}

// NewSiteService returns a new SiteService.
func NewSiteService(siteRepo repository.SiteRepository, notifier *notifications.Notifier) *SiteService {
	return &SiteService{siteRepo: siteRepo, notifier: notifier}
}

// ListCards returns every site in wire form. An empty catalog is an empty
// list, never an error.
func (s *SiteService) ListCards(ctx context.Context) ([]models.CardView, error) {
	sites, err := s.siteRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return models.CardViews(sites), nil
}

// GetCard returns one site in wire form.
func (s *SiteService) GetCard(ctx context.Context, id uint) (*models.CardView, error) {
	site, err := s.siteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := site.View()
	return &view, nil
}

// UpdatePrice sets a site's price from a raw client value, which may be a
// bare number or a currency display string. Rejects anything that does not
// parse to a positive amount.
func (s *SiteService) UpdatePrice(ctx context.Context, id uint, rawPrice string) (*models.CardView, error) {
	price, ok := money.Parse(rawPrice)
	if !ok || !price.IsPositive() {
		return nil, models.NewValidationError("Valid price is required")
	}

	if err := s.siteRepo.UpdatePrice(ctx, id, price); err != nil {
		return nil, err
	}

	site, err := s.siteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := site.View()

	if s.notifier != nil {
		// Best-effort: subscribers refresh their catalog on any price change.
		_ = s.notifier.PublishCatalogUpdate(ctx, view)
	}

	return &view, nil
}
