// Package main is a post-deployment smoke test. It hits the public banners
// endpoint on a locally running server and prints the status and body, which
// is enough to confirm the router, database, and serialization are all alive
// without reaching for curl or the integration suite.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
)

func main() {
	base := os.Getenv("API_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}

	resp, err := http.Get(base + "/api/v1/banners")
	if err != nil {
		fmt.Fprintf(os.Stderr, "request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading body: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Printf("Response:\n%s\n", body)
}
