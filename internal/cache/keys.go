package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	SiteKeyPrefix     = "site:%d"
	CatalogKey        = "catalog:sites"
	PortfolioPrefix   = "portfolio:%d"
	IdempotencyPrefix = "idem:%s"
)

const (
	UserTTL        = 5 * time.Minute
	SiteTTL        = 30 * time.Second
	PortfolioTTL   = 30 * time.Second
	IdempotencyTTL = 24 * time.Hour
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func SiteKey(siteID uint) string {
	return fmt.Sprintf(SiteKeyPrefix, siteID)
}

func PortfolioKey(userID uint) string {
	return fmt.Sprintf(PortfolioPrefix, userID)
}

func IdempotencyKey(key string) string {
	return fmt.Sprintf(IdempotencyPrefix, key)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateSite drops both the single-site entry and the catalog listing,
// which embeds every site's price.
func InvalidateSite(ctx context.Context, siteID uint) {
	Invalidate(ctx, SiteKey(siteID))
	Invalidate(ctx, CatalogKey)
}

func InvalidatePortfolio(ctx context.Context, userID uint) {
	Invalidate(ctx, PortfolioKey(userID))
}
