package middleware

import (
	"context"
	"net/http"

	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/models"
	"github.com/gorilla/sessions"
)

type ctxKey int

const (
	identityKey ctxKey = iota
	adminScopeKey
)

// Identity is the request-scoped citizen identity resolved by RequireCitizen.
type Identity struct {
	UserID int
	Name   string
}

// AdminScope carries an admin identity together with the single panchayath it
// is bound to. Every tenant-scoped query takes its panchayath id from here.
type AdminScope struct {
	AdminID      int
	PanchayathID int
}

func RequireCitizen(store *sessions.CookieStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := store.Get(r, "session")
			userID, ok := session.Values["user_id"].(int)

			if !ok {
				session.AddFlash(models.Flash{Category: "info", Message: "Please login to continue."})
				session.Save(r, w)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			name, _ := session.Values["user_name"].(string)
			ctx := context.WithValue(r.Context(), identityKey, Identity{UserID: userID, Name: name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAdmin(store *sessions.CookieStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := store.Get(r, "session")
			adminID, ok := session.Values["admin_id"].(int)
			panchayathID, pok := session.Values["panchayath_id"].(int)

			if !ok || !pok {
				session.AddFlash(models.Flash{Category: "warning", Message: "Please login to access this page."})
				session.Save(r, w)
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), adminScopeKey, AdminScope{AdminID: adminID, PanchayathID: panchayathID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CitizenFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func AdminFrom(ctx context.Context) (AdminScope, bool) {
	scope, ok := ctx.Value(adminScopeKey).(AdminScope)
	return scope, ok
}
