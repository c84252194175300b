package main

import (
	"errors"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

// Applies the versioned SQL migrations. The API binary never touches the
// schema; run this at deploy time.
//
//	go run ./cmd/migrate        # up
//	go run ./cmd/migrate down   # roll back one step
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		log.Fatal("Failed to init migrations: ", err)
	}
	defer m.Close()

	if len(os.Args) > 1 && os.Args[1] == "down" {
		if err := m.Steps(-1); err != nil {
			log.Fatal("Rollback failed: ", err)
		}
		log.Println("Rolled back one migration")
		return
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("Schema already up to date")
			return
		}
		log.Fatal("Migration failed: ", err)
	}
	log.Println("Migrations applied")
}
