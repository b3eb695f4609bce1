// Package main repairs dirty migration state in the site database. When a
// golang-migrate run is interrupted mid-migration the schema_migrations row
// keeps dirty=true, and the server refuses to start with "Dirty database
// version". This tool clears the flag so the next startup can retry the
// migration cleanly. Run it only after confirming the half-applied migration
// was rolled back or completed by hand.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

func migrationState(db *sql.DB) (version int, dirty bool, err error) {
	err = db.QueryRow("SELECT version, dirty FROM schema_migrations LIMIT 1").Scan(&version, &dirty)
	return version, dirty, err
}

func main() {
	password := os.Getenv("DATABASE_PASSWORD")
	if password == "" {
		password = "postgres"
	}

	dsn := fmt.Sprintf("host=localhost port=5432 user=church password=%s dbname=church_site sslmode=disable", password)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	version, dirty, err := migrationState(db)
	if err != nil {
		log.Fatalf("Failed to check migration state: %v", err)
	}
	log.Printf("Current migration state: version=%d, dirty=%v", version, dirty)

	if !dirty {
		log.Println("Migration state is already clean")
		return
	}

	if _, err := db.Exec("UPDATE schema_migrations SET dirty = false"); err != nil {
		log.Fatalf("Failed to clear dirty flag: %v", err)
	}

	version, dirty, err = migrationState(db)
	if err != nil {
		log.Fatalf("Failed to re-check migration state: %v", err)
	}
	log.Printf("Migration state after repair: version=%d, dirty=%v", version, dirty)
}
