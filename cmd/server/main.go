package main

import (
	"log"
	"net/http"
	"os"

	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/db"
	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/handlers"
	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/router"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	database, err := db.New()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "default-secret-key-change-in-production"
	}

	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}

	h := handlers.New(database, store)
	r := router.New(h, store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Printf("Server starting on http://0.0.0.0:%s", port)
	if err := http.ListenAndServe("0.0.0.0:"+port, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
