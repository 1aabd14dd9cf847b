package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/auth"
	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/db"
	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/middleware"
	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/models"
	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/storage"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	panchayaths, err := h.DB.GetAllPanchayaths(r.Context())
	if err != nil {
		panchayaths = []models.Panchayath{}
	}

	stats, err := h.DB.GetStats(r.Context())
	if err != nil {
		stats = &models.Stats{}
	}

	data := h.pageData(w, r, session)
	data["Panchayaths"] = panchayaths
	data["Stats"] = stats

	h.render(w, "index.html", data)
}

func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")
	h.render(w, "about.html", h.pageData(w, r, session))
}

func (h *Handler) ReportPage(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	panchayaths, err := h.DB.GetAllPanchayaths(r.Context())
	if err != nil {
		panchayaths = []models.Panchayath{}
	}

	data := h.pageData(w, r, session)
	data["Panchayaths"] = panchayaths

	h.render(w, "report_issue.html", data)
}

func (h *Handler) ReportSubmit(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	identity, ok := middleware.CitizenFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	// Roles are mutually exclusive: an admin session may not file issues.
	if _, isAdmin := session.Values["admin_id"].(int); isAdmin {
		addFlash(session, "danger", "Admins cannot report issues. Please logout of the admin account first.")
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	r.ParseMultipartForm(20 << 20)

	panchayathID, _ := strconv.Atoi(r.FormValue("panchayath_id"))
	form := models.ReportForm{
		PanchayathID: panchayathID,
		Category:     r.FormValue("category"),
		Description:  r.FormValue("description"),
		Location:     r.FormValue("location"),
	}

	if err := h.Validate.Struct(form); err != nil {
		addFlash(session, "danger", "Please fill in all the required fields.")
		session.Save(r, w)
		http.Redirect(w, r, "/report", http.StatusSeeOther)
		return
	}

	var photoPath *string
	if _, fileHeader, err := r.FormFile("photo"); err == nil {
		saved, err := storage.SaveUpload(fileHeader, uploadsDir)
		if err != nil {
			addFlash(session, "danger", err.Error())
			session.Save(r, w)
			http.Redirect(w, r, "/report", http.StatusSeeOther)
			return
		}
		photoPath = &saved
	}

	userID := identity.UserID
	issue := &models.Issue{
		PanchayathID: form.PanchayathID,
		Category:     form.Category,
		Description:  form.Description,
		Location:     form.Location,
		PhotoPath:    photoPath,
		Status:       "Pending",
		UserID:       &userID,
	}

	if err := h.DB.CreateIssue(r.Context(), issue); err != nil {
		addFlash(session, "danger", "Could not submit the issue. Please try again.")
		session.Save(r, w)
		http.Redirect(w, r, "/report", http.StatusSeeOther)
		return
	}

	addFlash(session, "success", "Issue reported successfully")
	session.Save(r, w)
	http.Redirect(w, r, "/track", http.StatusSeeOther)
}

func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	identity, ok := middleware.CitizenFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	issues, err := h.DB.GetIssuesByUser(r.Context(), identity.UserID)
	if err != nil {
		issues = []models.Issue{}
	}

	data := h.pageData(w, r, session)
	data["Issues"] = issues

	h.render(w, "track_issue.html", data)
}

func (h *Handler) PublicTrack(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	issues, err := h.DB.GetAllIssues(r.Context())
	if err != nil {
		issues = []models.Issue{}
	}

	data := h.pageData(w, r, session)
	data["Issues"] = issues

	h.render(w, "public_track.html", data)
}

func (h *Handler) NoticesPage(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	notices, err := h.DB.GetAllNotices(r.Context())
	if err != nil {
		notices = []models.Notice{}
	}

	data := h.pageData(w, r, session)
	data["Notices"] = notices

	h.render(w, "notices.html", data)
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")
	h.render(w, "register.html", h.pageData(w, r, session))
}

func (h *Handler) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	form := models.RegisterForm{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Mobile:   r.FormValue("mobile"),
		Password: r.FormValue("password"),
	}

	if err := h.Validate.Struct(form); err != nil {
		addFlash(session, "danger", "Please fill in all fields correctly. Password needs at least 8 characters.")
		session.Save(r, w)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		addFlash(session, "danger", "Something went wrong. Please try again.")
		session.Save(r, w)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	if _, err := h.DB.CreateUser(r.Context(), form.Name, form.Email, form.Mobile, hash); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			addFlash(session, "danger", "Email already registered")
		} else {
			addFlash(session, "danger", "Could not create the account. Please try again.")
		}
		session.Save(r, w)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	addFlash(session, "success", "Registration successful. Please login.")
	session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")
	h.render(w, "login.html", h.pageData(w, r, session))
}

func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	email := r.FormValue("email")
	password := r.FormValue("password")

	// One generic message for unknown email and wrong password alike.
	user, err := h.DB.GetUserByEmail(r.Context(), email)
	if err != nil || auth.CheckPassword(password, user.PasswordHash) != nil {
		addFlash(session, "danger", "Invalid email or password")
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session.Values["user_id"] = user.ID
	session.Values["user_name"] = user.Name
	session.Save(r, w)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout removes the citizen keys only; an admin login in the same session
// survives.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	delete(session.Values, "user_id")
	delete(session.Values, "user_name")
	session.Save(r, w)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	identity, ok := middleware.CitizenFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.DB.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		// Row deleted after the session was issued.
		addFlash(session, "danger", "Account not found")
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := h.pageData(w, r, session)
	data["User"] = user

	h.render(w, "profile.html", data)
}

func (h *Handler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	code := chi.URLParam(r, "code")
	if code != "" {
		session.Values["locale"] = code
		session.Save(r, w)
	}

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
