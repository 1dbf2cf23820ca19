package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })

	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var out fixture
	found, err := GetJSON(ctx, "missing", &out)
	assert.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "k", fixture{Name: "solar", Count: 3}, UserTTL))

	found, err = GetJSON(ctx, "k", &out)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, fixture{Name: "solar", Count: 3}, out)
}

func TestAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *fixture) func() error {
		return func() error {
			calls++
			dest.Name = "wind"
			return nil
		}
	}

	var first fixture
	require.NoError(t, Aside(ctx, "aside", &first, SiteTTL, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "wind", first.Name)

	// Second read is served from the cache; fetch is not called again.
	var second fixture
	require.NoError(t, Aside(ctx, "aside", &second, SiteTTL, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "wind", second.Name)
}

func TestAsideFetchError(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	sentinel := errors.New("db down")
	var out fixture
	err := Aside(ctx, "err", &out, SiteTTL, func() error { return sentinel })
	assert.ErrorIs(t, err, sentinel)

	found, err := GetJSON(ctx, "err", &out)
	assert.NoError(t, err)
	assert.False(t, found, "failed fetches must not be cached")
}

func TestInvalidateSite(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, SiteKey(7), fixture{Name: "site"}, SiteTTL))
	require.NoError(t, SetJSON(ctx, CatalogKey, []fixture{{Name: "site"}}, SiteTTL))

	InvalidateSite(ctx, 7)

	assert.False(t, mr.Exists(SiteKey(7)))
	assert.False(t, mr.Exists(CatalogKey), "catalog listing embeds prices and must drop too")
}

func TestNilClientIsSafe(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var out fixture
	found, err := GetJSON(ctx, "k", &out)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetJSON(ctx, "k", out, UserTTL))

	calls := 0
	require.NoError(t, Aside(ctx, "k", &out, UserTTL, func() error { calls++; return nil }))
	assert.Equal(t, 1, calls)

	Invalidate(ctx, "k")
	InvalidatePortfolio(ctx, 1)
}

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, "user:42", UserKey(42))
	assert.Equal(t, "site:7", SiteKey(7))
	assert.Equal(t, "portfolio:9", PortfolioKey(9))
	assert.Equal(t, "idem:abc", IdempotencyKey("abc"))
}
