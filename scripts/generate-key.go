// Package main is a development utility for generating a JWT signing secret
// and an initial admin account seed. It prints the secret as a ready-to-export
// environment variable and a ready-to-run SQL INSERT for the users table so
// developers can bring up a working local instance without running the full
// server flow first. Do not use generated seeds in production — set
// CHURCH_AUTH_JWT_SECRET from a secret manager and create admins through the
// API.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Generate random bytes for the signing secret
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		log.Fatal(err)
	}
	secret := base64.RawURLEncoding.EncodeToString(secretBytes)

	// Seed admin password: random, shown once
	passwordBytes := make([]byte, 12)
	if _, err := rand.Read(passwordBytes); err != nil {
		log.Fatal(err)
	}
	password := base64.RawURLEncoding.EncodeToString(passwordBytes)

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("==========================================================")
	fmt.Println("JWT Secret Generated")
	fmt.Println("==========================================================")
	fmt.Printf("\nexport CHURCH_AUTH_JWT_SECRET=%s\n", secret)
	fmt.Println("\n==========================================================")
	fmt.Println("Admin Seed")
	fmt.Println("==========================================================")
	fmt.Printf("\nUsername: admin\nPassword: %s\n", password)
	fmt.Println("\nSQL Insert:")
	fmt.Printf(`
INSERT INTO users (id, username, email, password_hash, is_admin, is_active)
VALUES (gen_random_uuid(), 'admin', 'admin@dev.local', '%s', true, true);
`, string(hashBytes))
	fmt.Println("\n==========================================================")
}
