package models

import (
	"time"

	"helios/internal/money"

	"github.com/shopspring/decimal"
)

// Investment is an immutable record of a user committing an amount to a
// site. InvestedStock snapshots the site title at the moment of investment.
// IdempotencyKey deduplicates client retries; the unique index is the
// backstop when two retries race.
type Investment struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	User           *User           `gorm:"foreignKey:UserID" json:"-"`
	SiteID         uint            `gorm:"not null;index" json:"card_id"`
	Site           *Site           `gorm:"foreignKey:SiteID" json:"-"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"-"`
	InvestmentDate string          `json:"investment_date"`
	InvestedStock  string          `json:"invested_stock"`
	Reference      string          `gorm:"size:36" json:"reference"`
	IdempotencyKey *string         `gorm:"uniqueIndex" json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
}

// InvestmentView is the wire representation of an investment.
type InvestmentView struct {
	ID             uint   `json:"id"`
	UserID         uint   `json:"user_id"`
	CardID         uint   `json:"card_id"`
	AmountInvested string `json:"amount_invested"`
	InvestmentDate string `json:"investment_date"`
	InvestedStock  string `json:"invested_stock"`
	Reference      string `json:"reference"`
}

// View converts the investment into its wire representation.
func (i *Investment) View() InvestmentView {
	return InvestmentView{
		ID:             i.ID,
		UserID:         i.UserID,
		CardID:         i.SiteID,
		AmountInvested: money.Format(i.Amount),
		InvestmentDate: i.InvestmentDate,
		InvestedStock:  i.InvestedStock,
		Reference:      i.Reference,
	}
}

// Holding is one row of a user's computed holdings summary: the ordered
// {title, amount} pairs that replace the legacy free-text aggregate field.
type Holding struct {
	Title  string `json:"title"`
	Amount string `json:"amount"`
}
