// Command main runs the database seeder for Helios.
package main

import (
	"flag"
	"log"

	"helios/internal/config"
	"helios/internal/database"
	"helios/internal/seed"
)

func main() {
	numSites := flag.Int("sites", 12, "Number of sites to create")
	numUsers := flag.Int("users", 25, "Number of users to create")
	numInvestments := flag.Int("investments", 100, "Number of investments to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d sites, %d users, %d investments, clean=%v\n",
		*numSites, *numUsers, *numInvestments, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	sites, err := s.SeedCatalog(*numSites)
	if err != nil {
		log.Fatalf("Catalog seeding failed: %v", err)
	}
	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := s.SeedInvestments(users, sites, *numInvestments); err != nil {
		log.Fatalf("Investment seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
