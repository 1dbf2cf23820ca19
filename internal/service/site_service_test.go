package service

import (
	"context"
	"testing"

	"helios/internal/models"
	"helios/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCards(t *testing.T) {
	db := setupLedgerDB(t)
	svc := NewSiteService(repository.NewSiteRepository(db), nil)
	ctx := context.Background()

	t.Run("Empty catalog is an empty list", func(t *testing.T) {
		cards, err := svc.ListCards(ctx)
		require.NoError(t, err)
		assert.NotNil(t, cards)
		assert.Empty(t, cards)
	})

	t.Run("Cards come back in ID order with derived fields", func(t *testing.T) {
		createSite(t, db, "Lisbon Solar Park", "150", "500")
		createSite(t, db, "Aarhus Wind Farm", "0", "1000")

		cards, err := svc.ListCards(ctx)
		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Equal(t, "Lisbon Solar Park", cards[0].Title)
		assert.Equal(t, "$150.00", cards[0].Price)
		assert.InDelta(t, 30.0, cards[0].FundedPercentage, 0.0001)
	})
}

func TestUpdatePrice(t *testing.T) {
	db := setupLedgerDB(t)
	svc := NewSiteService(repository.NewSiteRepository(db), nil)
	ctx := context.Background()

	site := createSite(t, db, "Lisbon Solar Park", "150", "500")

	t.Run("Accepts currency display strings", func(t *testing.T) {
		card, err := svc.UpdatePrice(ctx, site.ID, "$2,000.00")
		require.NoError(t, err)
		assert.Equal(t, "$2,000.00", card.Price)
		assert.Equal(t, 100.0, card.FundedPercentage, "over target caps at 100")
	})

	t.Run("Rejects non-positive and unparseable prices", func(t *testing.T) {
		for _, raw := range []string{"0", "-50", "", "abc"} {
			_, err := svc.UpdatePrice(ctx, site.ID, raw)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr, "price %q", raw)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		}
	})

	t.Run("Unknown card", func(t *testing.T) {
		_, err := svc.UpdatePrice(ctx, 999, "100")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}
