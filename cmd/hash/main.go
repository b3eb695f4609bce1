// Package main is a utility for generating bcrypt hashes of admin passwords.
// The backend stores only bcrypt hashes — never the raw password — so this
// tool is used when manually seeding the first admin account without running
// the full server. Running it locally produces a hash that can be inserted
// directly into the users table.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <password>\n", os.Args[0])
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(hash))
}
