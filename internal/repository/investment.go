package repository

import (
	"context"
	"errors"

	"helios/internal/models"

	"gorm.io/gorm"
)

// PortfolioRow is one investment joined with the site fields the portfolio
// view renders alongside it.
type PortfolioRow struct {
	Investment models.Investment
	Site       models.Site
}

// InvestmentRepository defines persistence operations for investments.
type InvestmentRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]PortfolioRow, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*models.Investment, error)
}

type investmentRepository struct {
	db *gorm.DB
}

// NewInvestmentRepository returns a new InvestmentRepository implementation.
func NewInvestmentRepository(db *gorm.DB) InvestmentRepository {
	return &investmentRepository{db: db}
}

func (r *investmentRepository) ListByUser(ctx context.Context, userID uint) ([]PortfolioRow, error) {
	var investments []models.Investment
	if err := r.db.WithContext(ctx).
		Preload("Site").
		Where("user_id = ?", userID).
		Order("id").
		Find(&investments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	rows := make([]PortfolioRow, 0, len(investments))
	for i := range investments {
		row := PortfolioRow{Investment: investments[i]}
		if investments[i].Site != nil {
			row.Site = *investments[i].Site
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *investmentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*models.Investment, error) {
	var investment models.Investment
	if err := r.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &investment, nil
}
