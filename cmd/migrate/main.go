package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	statements := []string{
		`DROP TABLE IF EXISTS votes`,
		`DROP TABLE IF EXISTS tournaments`,
		`DROP TABLE IF EXISTS teams`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}
	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS teams (
			id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
			name TEXT NOT NULL,
			icon_path TEXT NOT NULL DEFAULT '',
			hrp INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS tournaments (
			id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
			name TEXT NOT NULL,
			game_date TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS votes (
			id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
			name TEXT NOT NULL,
			first_team TEXT NOT NULL,
			second_team TEXT NOT NULL,
			third_team TEXT NOT NULL,
			vote_at TEXT NOT NULL,
			tournament_id TEXT NOT NULL REFERENCES tournaments(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_tournament_vote_at ON votes (tournament_id, vote_at)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_name_tournament ON votes (name, tournament_id)`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}
	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	teams := []struct {
		name     string
		iconPath string
		hrp      int
	}{
		{"SHOOTING STARS", "icons/shooting-stars.png", 95},
		{"GHOST RIDERS", "icons/ghost-riders.png", 88},
		{"THUNDER BOLTS", "icons/thunder-bolts.png", 82},
		{"PHOENIX WINGS", "icons/phoenix-wings.png", 74},
		{"IRON WALLS", "", 61},
	}

	for _, t := range teams {
		_, err := conn.Exec(ctx,
			`INSERT INTO teams (name, icon_path, hrp) VALUES ($1, $2, $3)`,
			t.name, t.iconPath, t.hrp)
		if err != nil {
			return fmt.Errorf("failed to seed team %s: %w", t.name, err)
		}
	}

	// One tournament scheduled for today in the reference time zone, so a
	// freshly seeded environment is immediately votable before the deadline
	loc, err := time.LoadLocation(getenv("TIMEZONE", "Asia/Tokyo"))
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	today := time.Now().In(loc).Format("2006-01-02")

	_, err = conn.Exec(ctx,
		`INSERT INTO tournaments (name, game_date) VALUES ($1, $2)`,
		"SPRING CUP", today)
	if err != nil {
		return fmt.Errorf("failed to seed tournament: %w", err)
	}

	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
