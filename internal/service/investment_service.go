package service

import (
	"context"
	"errors"

	"helios/internal/cache"
	"helios/internal/models"
	"helios/internal/money"
	"helios/internal/notifications"
	"helios/internal/observability"
	"helios/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errIdempotentReplay signals that the investment insert lost a race against
// another request carrying the same idempotency key. The transaction rolls
// back and the stored result is replayed instead.
var errIdempotentReplay = errors.New("idempotency key already used")

// InvestmentService is the funding ledger. An investment atomically bumps the
// site's current price and appends an immutable investment row; both happen
// in one transaction or not at all.
type InvestmentService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	invRepo  repository.InvestmentRepository
	notifier *notifications.Notifier
}

// InvestInput carries one investment request.
type InvestInput struct {
	UserID         uint
	SiteID         uint
	Amount         decimal.Decimal
	InvestmentDate string
	IdempotencyKey string
}

// InvestResult is the outcome of a committed (or replayed) investment.
type InvestResult struct {
	Investment models.Investment
	Site       models.Site
	Replayed   bool
}

// PortfolioItem is one investment joined with the site fields the portfolio
// view renders.
type PortfolioItem struct {
	models.InvestmentView
	Title            string  `json:"title"`
	Price            string  `json:"price"`
	TargetPrice      string  `json:"target_price"`
	FundedPercentage float64 `json:"funded_percentage"`
	Image            string  `json:"image,omitempty"`
	ReturnValue      string  `json:"return_value,omitempty"`
	Investment       string  `json:"investment,omitempty"`
	Yield            string  `json:"yield,omitempty"`
}

// PortfolioView is the full portfolio response: the raw rows plus the
// holdings summary computed on read (never stored).
type PortfolioView struct {
	UserID        uint             `json:"user_id"`
	Investments   []PortfolioItem  `json:"investments"`
	Holdings      []models.Holding `json:"holdings"`
	TotalInvested string           `json:"total_invested"`
}

// NewInvestmentService returns a new InvestmentService.
func NewInvestmentService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	invRepo repository.InvestmentRepository,
	notifier *notifications.Notifier,
) *InvestmentService {
	return &InvestmentService{db: db, userRepo: userRepo, invRepo: invRepo, notifier: notifier}
}

// Invest applies one investment request.
//
// Consistency: the site row is locked for the duration of the transaction
// and the increment is evaluated server-side (price = price + ?), so
// concurrent investments against one site are linearized and none are lost.
// The investment row is inserted in the same transaction; cancellation or
// failure rolls back both effects.
//
// Idempotency: a client-supplied key dedupes retries. A key seen before
// returns the stored investment with no second price bump.
func (s *InvestmentService) Invest(ctx context.Context, in InvestInput) (*InvestResult, error) {
	if !money.ValidAmount(in.Amount) {
		return nil, models.NewValidationError("A positive amount with at most two decimal places is required")
	}

	if in.IdempotencyKey != "" {
		if res, err := s.replay(ctx, in.IdempotencyKey); err != nil {
			return nil, err
		} else if res != nil {
			return res, nil
		}
	}

	var (
		inv  models.Investment
		site models.Site
	)

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// sqlite has no FOR UPDATE; it serializes writers on its own.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&site, in.SiteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Card", in.SiteID)
			}
			return models.NewInternalError(err)
		}

		var user models.User
		if err := tx.First(&user, in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", in.UserID)
			}
			return models.NewInternalError(err)
		}

		if err := tx.Model(&models.Site{}).Where("id = ?", site.ID).
			Update("price", gorm.Expr("price + ?", in.Amount)).Error; err != nil {
			return models.NewInternalError(err)
		}

		inv = models.Investment{
			UserID:         in.UserID,
			SiteID:         in.SiteID,
			Amount:         in.Amount,
			InvestmentDate: in.InvestmentDate,
			InvestedStock:  site.Title,
			Reference:      uuid.NewString(),
		}
		if in.IdempotencyKey != "" {
			key := in.IdempotencyKey
			inv.IdempotencyKey = &key
		}
		if err := tx.Create(&inv).Error; err != nil {
			if repository.IsUniqueConstraintError(err) {
				return errIdempotentReplay
			}
			return models.NewInternalError(err)
		}

		site.Price = site.Price.Add(in.Amount)
		return nil
	})

	if errors.Is(txErr, errIdempotentReplay) {
		res, err := s.replay(ctx, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, models.NewInternalError(errIdempotentReplay)
		}
		return res, nil
	}
	if txErr != nil {
		return nil, txErr
	}

	cache.InvalidateSite(ctx, site.ID)
	cache.InvalidatePortfolio(ctx, in.UserID)
	if in.IdempotencyKey != "" {
		// Marker only; the unique index on the column is the real guarantee.
		_ = cache.SetJSON(ctx, cache.IdempotencyKey(in.IdempotencyKey), inv.ID, cache.IdempotencyTTL)
	}

	observability.InvestmentsApplied.WithLabelValues("created").Inc()
	amountF, _ := in.Amount.Float64()
	observability.InvestmentAmountTotal.Add(amountF)

	if s.notifier != nil {
		cardView := site.View()
		_ = s.notifier.PublishPortfolioUpdate(ctx, in.UserID, map[string]any{
			"investment": inv.View(),
			"card":       cardView,
		})
		_ = s.notifier.PublishCatalogUpdate(ctx, cardView)
		observability.PortfolioPushes.Inc()
	}

	return &InvestResult{Investment: inv, Site: site}, nil
}

// replay returns the stored result for an idempotency key, or nil when the
// key has not been used yet.
func (s *InvestmentService) replay(ctx context.Context, key string) (*InvestResult, error) {
	existing, err := s.invRepo.GetByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	var site models.Site
	if err := s.db.WithContext(ctx).First(&site, existing.SiteID).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.InvestmentsApplied.WithLabelValues("replayed").Inc()
	return &InvestResult{Investment: *existing, Site: site, Replayed: true}, nil
}

// Portfolio returns the joined investment rows for a user plus the computed
// holdings summary. Each fetch also pushes a portfolioUpdate to the user's
// stream so other connected devices converge.
func (s *InvestmentService) Portfolio(ctx context.Context, userID uint) (*PortfolioView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.invRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &PortfolioView{
		UserID:      userID,
		Investments: make([]PortfolioItem, 0, len(rows)),
		Holdings:    []models.Holding{},
	}

	total := decimal.Zero
	totals := map[string]decimal.Decimal{}
	order := []string{}

	for i := range rows {
		inv := rows[i].Investment
		st := rows[i].Site
		view.Investments = append(view.Investments, PortfolioItem{
			InvestmentView:   inv.View(),
			Title:            st.Title,
			Price:            money.Format(st.Price),
			TargetPrice:      money.Format(st.TargetPrice),
			FundedPercentage: st.FundedPercentage(),
			Image:            st.Image,
			ReturnValue:      st.ReturnValue,
			Investment:       st.Investment,
			Yield:            st.Yield,
		})

		title := inv.InvestedStock
		if _, seen := totals[title]; !seen {
			order = append(order, title)
		}
		totals[title] = totals[title].Add(inv.Amount)
		total = total.Add(inv.Amount)
	}

	for _, title := range order {
		view.Holdings = append(view.Holdings, models.Holding{
			Title:  title,
			Amount: money.Format(totals[title]),
		})
	}
	view.TotalInvested = money.Format(total)

	if s.notifier != nil {
		_ = s.notifier.PublishPortfolioUpdate(ctx, userID, view)
		observability.PortfolioPushes.Inc()
	}

	return view, nil
}
