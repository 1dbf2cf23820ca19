package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"helios/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	r       *rand.Rand
}

// NewSeeder creates a Seeder for the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		r:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes investments, sites and users, in dependency order.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Investment{},
		&models.Site{},
		&models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// SeedCatalog creates numSites fundable sites.
func (s *Seeder) SeedCatalog(numSites int) ([]*models.Site, error) {
	log.Printf("Seeding %d sites...", numSites)
	sites := make([]*models.Site, 0, numSites)
	for i := 0; i < numSites; i++ {
		site, err := s.factory.CreateSite()
		if err != nil {
			return nil, fmt.Errorf("create site: %w", err)
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// SeedUsers creates numUsers registered accounts.
func (s *Seeder) SeedUsers(numUsers int) ([]*models.User, error) {
	log.Printf("Seeding %d users...", numUsers)
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedInvestments spreads numInvestments random investments across the given
// users and sites, keeping each site's funded price consistent with its
// investment rows.
func (s *Seeder) SeedInvestments(users []*models.User, sites []*models.Site, numInvestments int) error {
	if len(users) == 0 || len(sites) == 0 {
		return nil
	}
	log.Printf("Seeding %d investments...", numInvestments)
	for i := 0; i < numInvestments; i++ {
		user := users[s.r.Intn(len(users))]
		site := sites[s.r.Intn(len(sites))]
		amount := decimal.NewFromInt(int64(25 * (s.r.Intn(20) + 1))) // $25..$500
		if _, err := s.factory.CreateInvestment(user, site, amount); err != nil {
			return fmt.Errorf("create investment: %w", err)
		}
	}
	return nil
}
