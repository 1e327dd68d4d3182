package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/khoahotran/rentredi/pkg/client"
)

var demoUsers = []client.UserPayload{
	{Name: "Alice", ZipCode: "10001"},
	{Name: "Bob", ZipCode: "94105"},
}

func main() {
	fmt.Println("adding demo users through the API...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	api := client.New(baseURL, client.DefaultTimeout)
	existing, err := api.ListUsers(ctx)
	if err != nil {
		log.Fatalf("cannot list users: %v", err)
	}

	seen := make(map[string]bool, len(existing))
	for _, u := range existing {
		seen[u.Name+"|"+u.ZipCode] = true
	}

	for _, p := range demoUsers {
		if seen[p.Name+"|"+p.ZipCode] {
			fmt.Printf("user '%s' already exists, skip.\n", p.Name)
			continue
		}
		u, err := api.CreateUser(ctx, p)
		if err != nil {
			log.Fatalf("cannot add user '%s': %v", p.Name, err)
		}
		fmt.Printf("added user '%s' (%s) successfully!\n", u.Name, u.ID)
	}
}
