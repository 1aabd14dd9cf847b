package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/auth"
	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/db"
	"github.com/joho/godotenv"
)

func main() {
	username := flag.String("username", "", "admin login name")
	password := flag.String("password", "", "admin password")
	panchayathID := flag.Int("panchayath", 0, "id of the panchayath this admin manages")
	flag.Parse()

	if *username == "" || *password == "" || *panchayathID == 0 {
		log.Fatal("usage: create-admin -username NAME -password PASS -panchayath ID")
	}

	if err := auth.ValidatePassword(*password); err != nil {
		log.Fatalf("Weak password: %v", err)
	}

	godotenv.Load()

	database, err := db.New()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin, err := database.CreateAdmin(context.Background(), *username, hash, *panchayathID)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Println("Admin created successfully")
	fmt.Printf("Username:      %s\n", admin.Username)
	fmt.Printf("Admin ID:      %d\n", admin.ID)
	fmt.Printf("Panchayath ID: %d\n", admin.PanchayathID)
}
