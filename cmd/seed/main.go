package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/db"
	"github.com/joho/godotenv"
)

// Panchayaths exist only as seed data; there is no handler that creates one.
var panchayaths = []struct {
	name     string
	district string
	state    string
}{
	{"Kumarakom", "Kottayam", "Kerala"},
	{"Aranmula", "Pathanamthitta", "Kerala"},
	{"Mararikulam", "Alappuzha", "Kerala"},
	{"Nedumkandam", "Idukki", "Kerala"},
	{"Ozhalapathy", "Palakkad", "Kerala"},
}

func main() {
	godotenv.Load()

	database, err := db.New()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	ctx := context.Background()

	count, err := database.CountPanchayaths(ctx)
	if err != nil {
		log.Fatalf("Failed to count panchayaths: %v", err)
	}
	if count > 0 {
		fmt.Printf("Database already has %d panchayaths, nothing to do\n", count)
		return
	}

	for _, p := range panchayaths {
		created, err := database.CreatePanchayath(ctx, p.name, p.district, p.state)
		if err != nil {
			log.Fatalf("Failed to seed panchayath %s: %v", p.name, err)
		}
		fmt.Printf("Seeded panchayath %d: %s (%s, %s)\n", created.ID, created.Name, created.District, created.State)
	}
}
