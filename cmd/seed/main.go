// Command seed populates the database with demo data for development.
package main

import (
	"flag"
	"log"

	"pickaside/internal/config"
	"pickaside/internal/database"
	"pickaside/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "number of users to create")
	numJobs := flag.Int("jobs", 10, "number of job posts to create")
	numEvents := flag.Int("events", 8, "number of events to create")
	clean := flag.Bool("clean", false, "delete existing rows first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:    *numUsers,
		NumJobs:     *numJobs,
		NumEvents:   *numEvents,
		ShouldClean: *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
