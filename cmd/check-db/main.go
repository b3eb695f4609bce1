// Package main is a diagnostic tool for testing database connectivity and
// inspecting live site data. It connects to the database, counts rows in the
// main content tables, and prints a summary to stdout. The binary exits with
// a non-zero code on any failure so it can be embedded in health checks or
// CI/CD pipeline steps to gate deployments on a reachable, populated database.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

func main() {
	dbPassword := os.Getenv("DATABASE_PASSWORD")
	if dbPassword == "" {
		dbPassword = "church"
	}

	connStr := fmt.Sprintf("host=localhost port=5432 user=church password=%s dbname=church_site sslmode=disable", dbPassword)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	tables := []string{
		"users",
		"home_banners",
		"service_times",
		"leaders",
		"sermons",
		"events",
		"branches",
		"books",
		"merchandise",
		"contact_messages",
		"testimonies",
		"audit_logs",
		"image_logs",
		"exchange_rates",
	}

	fmt.Println("=== TABLE COUNTS ===")
	for _, table := range tables {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			log.Fatalf("Query failed for %s: %v", table, err)
		}
		fmt.Printf("%-18s %d\n", table, count)
	}
}
