package main

import (
	"context"
	"log"

	"github.com/saeid-a/CoachSchedBack/internal/config"
	"github.com/saeid-a/CoachSchedBack/internal/database"
	"github.com/saeid-a/CoachSchedBack/pkg/utils"
)

type seedUser struct {
	name    string
	email   string
	phone   string
	isCoach bool
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	if cfg.SeedPassword == "" {
		log.Fatal("SEED_PASSWORD is required")
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	users := []seedUser{
		{"Test Coach", cfg.DefaultCoachEmail, "123-456-7890", true},
		{"Test Student", cfg.DefaultStudentEmail, "098-765-4321", false},
		{"Coach Alice", "alice@example.com", "1234567890", true},
		{"Coach Bob", "bob@example.com", "0987654321", true},
		{"Student Charlie", "charlie@example.com", "1122334455", false},
		{"Student Diana", "diana@example.com", "5566778899", false},
	}

	hashed, err := utils.HashPassword(cfg.SeedPassword)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	query := `
		INSERT INTO users (name, email, phone, password_hash, is_coach)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
	`
	for _, u := range users {
		if _, err := db.Exec(ctx, query, u.name, u.email, u.phone, hashed, u.isCoach); err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.email, err)
		}
		log.Printf("Seeded user %s", u.email)
	}
}
