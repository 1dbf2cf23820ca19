package models

import (
	"time"

	"helios/internal/money"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Site is a fundable renewable-energy project, called "card" on the wire.
// Price and TargetPrice are fixed-point decimals internally; the JSON
// boundary keeps the original currency-string contract via CardView.
type Site struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"-"`
	TargetPrice decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"-"`
	// Descriptive "Label: value" fields rendered verbatim by the client.
	Yield       string         `json:"yield,omitempty"`
	ReturnValue string         `json:"return_value,omitempty"`
	Investment  string         `json:"investment,omitempty"`
	Image       string         `json:"image,omitempty"`
	Files       string         `json:"files,omitempty"` // comma-separated attachment URLs
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// CardView is the wire representation of a Site. Funded percentage is
// derived on every read so it always reflects the latest price.
type CardView struct {
	ID               uint    `json:"id"`
	Title            string  `json:"title"`
	Price            string  `json:"price"`
	TargetPrice      string  `json:"target_price"`
	FundedPercentage float64 `json:"funded_percentage"`
	Yield            string  `json:"yield,omitempty"`
	ReturnValue      string  `json:"return_value,omitempty"`
	Investment       string  `json:"investment,omitempty"`
	Image            string  `json:"image,omitempty"`
	Files            string  `json:"files,omitempty"`
	Description      string  `json:"description,omitempty"`
}

// FundedPercentage returns the derived funding ratio, capped at 100.
func (s *Site) FundedPercentage() float64 {
	return money.FundedPercentage(s.Price, s.TargetPrice)
}

// View converts the site into its wire representation.
func (s *Site) View() CardView {
	return CardView{
		ID:               s.ID,
		Title:            s.Title,
		Price:            money.Format(s.Price),
		TargetPrice:      money.Format(s.TargetPrice),
		FundedPercentage: s.FundedPercentage(),
		Yield:            s.Yield,
		ReturnValue:      s.ReturnValue,
		Investment:       s.Investment,
		Image:            s.Image,
		Files:            s.Files,
		Description:      s.Description,
	}
}

// CardViews converts a slice of sites for list responses.
func CardViews(sites []Site) []CardView {
	views := make([]CardView, 0, len(sites))
	for i := range sites {
		views = append(views, sites[i].View())
	}
	return views
}
