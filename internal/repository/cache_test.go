package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"helios/internal/cache"
	"helios/internal/database"
	"helios/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupCachedDB opens a per-test database with a live miniredis behind the
// cache package, so the read paths run the way a deployed instance with
// Redis does.
func setupCachedDB(t *testing.T) *gorm.DB {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func TestSiteRepository_ListCacheHitKeepsPrices(t *testing.T) {
	db := setupCachedDB(t)
	repo := NewSiteRepository(db)
	ctx := context.Background()

	site := &models.Site{
		Title:       "Lisbon Solar Park",
		Price:       decimal.RequireFromString("100"),
		TargetPrice: decimal.RequireFromString("500"),
	}
	require.NoError(t, db.Create(site).Error)

	first, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.True(t, first[0].Price.Equal(decimal.RequireFromString("100")))

	// Change the row underneath the cache. The second List must come from
	// Redis and still carry the original numbers, not zeros.
	require.NoError(t, db.Model(&models.Site{}).Where("id = ?", site.ID).
		Update("price", decimal.RequireFromString("999")).Error)

	second, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, second[0].Price.Equal(decimal.RequireFromString("100")),
		"cache hit must preserve price, got %s", second[0].Price)
	assert.True(t, second[0].TargetPrice.Equal(decimal.RequireFromString("500")),
		"cache hit must preserve target price, got %s", second[0].TargetPrice)
	assert.InDelta(t, 20.0, second[0].FundedPercentage(), 0.0001)
	assert.Equal(t, "Lisbon Solar Park", second[0].Title)
}

func TestUserRepository_GetByIDCacheHitKeepsPasswordHash(t *testing.T) {
	db := setupCachedDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Name:     "Ada",
		LastName: "Lovelace",
		Email:    "ada@example.com",
		Password: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
	}
	require.NoError(t, db.Create(user).Error)

	first, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Password, first.Password)

	second, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Password, second.Password, "cache hit must preserve the stored hash")
	assert.Equal(t, "ada@example.com", second.Email)
	assert.Equal(t, "Ada", second.Name)
}
