package repository

import (
	"context"
	"errors"
	"time"

	"helios/internal/cache"
	"helios/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// cachedSite is the catalog's Redis shape. Site's JSON tags hide the numeric
// prices from API responses, so marshaling the entity itself would cache
// every price as zero; the cache round-trips through this shape instead.
type cachedSite struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	TargetPrice decimal.Decimal `json:"target_price"`
	Yield       string          `json:"yield,omitempty"`
	ReturnValue string          `json:"return_value,omitempty"`
	Investment  string          `json:"investment,omitempty"`
	Image       string          `json:"image,omitempty"`
	Files       string          `json:"files,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toCachedSite(s *models.Site) cachedSite {
	return cachedSite{
		ID:          s.ID,
		Title:       s.Title,
		Price:       s.Price,
		TargetPrice: s.TargetPrice,
		Yield:       s.Yield,
		ReturnValue: s.ReturnValue,
		Investment:  s.Investment,
		Image:       s.Image,
		Files:       s.Files,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (c *cachedSite) site() models.Site {
	return models.Site{
		ID:          c.ID,
		Title:       c.Title,
		Price:       c.Price,
		TargetPrice: c.TargetPrice,
		Yield:       c.Yield,
		ReturnValue: c.ReturnValue,
		Investment:  c.Investment,
		Image:       c.Image,
		Files:       c.Files,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// SiteRepository defines persistence operations for fundable sites.
type SiteRepository interface {
	List(ctx context.Context) ([]models.Site, error)
	GetByID(ctx context.Context, id uint) (*models.Site, error)
	UpdatePrice(ctx context.Context, id uint, price decimal.Decimal) error
	Create(ctx context.Context, site *models.Site) error
}

type siteRepository struct {
	db *gorm.DB
}

// NewSiteRepository returns a new SiteRepository implementation.
func NewSiteRepository(db *gorm.DB) SiteRepository {
	return &siteRepository{db: db}
}

// List returns every site. An empty table is a valid result, not an error.
func (r *siteRepository) List(ctx context.Context) ([]models.Site, error) {
	cached := []cachedSite{}
	err := cache.Aside(ctx, cache.CatalogKey, &cached, cache.SiteTTL, func() error {
		sites := []models.Site{}
		if err := r.db.WithContext(ctx).Order("id").Find(&sites).Error; err != nil {
			return models.NewInternalError(err)
		}
		cached = make([]cachedSite, 0, len(sites))
		for i := range sites {
			cached = append(cached, toCachedSite(&sites[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sites := make([]models.Site, 0, len(cached))
	for i := range cached {
		sites = append(sites, cached[i].site())
	}
	return sites, nil
}

func (r *siteRepository) GetByID(ctx context.Context, id uint) (*models.Site, error) {
	var site models.Site
	if err := r.db.WithContext(ctx).First(&site, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Card", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &site, nil
}

// UpdatePrice sets a site's current price outright (the manual admin path,
// distinct from the ledger's increment).
func (r *siteRepository) UpdatePrice(ctx context.Context, id uint, price decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&models.Site{}).Where("id = ?", id).Update("price", price)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Card", id)
	}
	cache.InvalidateSite(ctx, id)
	return nil
}

// Create inserts a new site. There is no public creation endpoint; this
// exists for seeding and tests.
func (r *siteRepository) Create(ctx context.Context, site *models.Site) error {
	if err := r.db.WithContext(ctx).Create(site).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.CatalogKey)
	return nil
}
