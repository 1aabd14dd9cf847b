package router

import (
	"net/http"

	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/handlers"
	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

// New wires the full HTTP surface: public pages, citizen-guarded routes and
// the tenant-scoped admin area.
func New(h *handlers.Handler, store *sessions.CookieStore) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir("uploads"))))

	r.Get("/", h.Home)
	r.Get("/about", h.About)
	r.Get("/public-track", h.PublicTrack)
	r.Get("/notices", h.NoticesPage)
	r.Get("/register", h.RegisterPage)
	r.Post("/register", h.RegisterSubmit)
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.LoginSubmit)
	r.Get("/logout", h.Logout)
	r.Get("/set_language/{code}", h.SetLanguage)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCitizen(store))
		r.Get("/report", h.ReportPage)
		r.Post("/report", h.ReportSubmit)
		r.Get("/track", h.Track)
		r.Get("/profile", h.Profile)
	})

	r.Get("/admin/login", h.AdminLoginPage)
	r.Post("/admin/login", h.AdminLoginSubmit)
	r.Get("/admin/logout", h.AdminLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(store))
		r.Get("/admin", h.Dashboard)
		r.Get("/admin/notices", h.AdminNotices)
		r.Post("/admin/notices", h.AdminNoticeCreate)
		r.Get("/admin/notices/delete/{id}", h.AdminNoticeDelete)
		r.Get("/admin/issue/{id}", h.AdminIssueDetail)
		r.Post("/admin/update/{id}", h.AdminUpdateIssue)
	})

	return r
}
