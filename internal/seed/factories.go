// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"helios/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var siteKinds = []string{"Solar Park", "Wind Farm", "Hydro Plant", "Geothermal Field", "Biogas Facility"}

// BuildSite constructs a fundable site without persisting it. The target is
// a round figure and the current price starts somewhere below it so seeded
// catalogs render partial funding bars.
func (f *Factory) BuildSite(overrides ...func(*models.Site)) *models.Site {
	kind := siteKinds[f.r.Intn(len(siteKinds))]
	target := decimal.NewFromInt(int64(f.r.Intn(90)+10) * 500) // 5000..49500
	funded := target.Mul(decimal.NewFromFloat(f.r.Float64() * 0.8)).Round(2)

	site := &models.Site{
		Title:       fmt.Sprintf("%s %s", gofakeit.City(), kind),
		Price:       funded,
		TargetPrice: target,
		Yield:       fmt.Sprintf("Yield: %.1f%%", 4+f.r.Float64()*5),
		ReturnValue: fmt.Sprintf("Return: %d months", 12*(f.r.Intn(4)+2)),
		Investment:  fmt.Sprintf("Min investment: $%d", 25*(f.r.Intn(8)+1)),
		Image:       fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
	}

	for _, override := range overrides {
		override(site)
	}
	return site
}

// CreateSite persists a generated site.
func (f *Factory) CreateSite(overrides ...func(*models.Site)) (*models.Site, error) {
	site := f.BuildSite(overrides...)
	if err := f.db.Create(site).Error; err != nil {
		return nil, err
	}
	return site, nil
}

// CreateUser constructs and persists a sample user. Every seeded user gets
// the password "password123".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Name:       gofakeit.FirstName(),
		LastName:   gofakeit.LastName(),
		Email:      gofakeit.Email(),
		Password:   string(hashed),
		Username:   fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		JoinedDate: gofakeit.DateRange(time.Now().AddDate(-2, 0, 0), time.Now()).Format("2006-01-02"),
		Kind:       models.UserKindRegistered,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateInvestment persists an investment for the given user and site and
// bumps the site's funded price the same way the ledger would.
func (f *Factory) CreateInvestment(user *models.User, site *models.Site, amount decimal.Decimal) (*models.Investment, error) {
	inv := &models.Investment{
		UserID:         user.ID,
		SiteID:         site.ID,
		Amount:         amount,
		InvestmentDate: gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now()).Format("2006-01-02"),
		InvestedStock:  site.Title,
		Reference:      gofakeit.UUID(),
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Site{}).Where("id = ?", site.ID).
			Update("price", gorm.Expr("price + ?", amount)).Error; err != nil {
			return err
		}
		return tx.Create(inv).Error
	})
	if err != nil {
		return nil, err
	}

	site.Price = site.Price.Add(amount)
	return inv, nil
}
