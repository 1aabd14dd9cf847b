package handlers

import (
	"net/http"
	"strconv"

	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/auth"
	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/middleware"
	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/models"
	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/storage"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")
	h.render(w, "admin_login.html", h.pageData(w, r, session))
}

func (h *Handler) AdminLoginSubmit(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	username := r.FormValue("username")
	password := r.FormValue("password")

	admin, err := h.DB.GetAdminByUsername(r.Context(), username)
	if err != nil || auth.CheckPassword(password, admin.PasswordHash) != nil {
		addFlash(session, "danger", "Invalid credentials")
		session.Save(r, w)
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	// The tenant binding is captured once at login and trusted for the rest
	// of the session.
	session.Values["admin_id"] = admin.ID
	session.Values["panchayath_id"] = admin.PanchayathID
	session.Save(r, w)

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	scope, ok := middleware.AdminFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	issues, err := h.DB.GetIssuesByPanchayath(r.Context(), scope.PanchayathID)
	if err != nil {
		issues = []models.Issue{}
	}

	data := h.pageData(w, r, session)
	data["Issues"] = issues

	h.render(w, "admin_dashboard.html", data)
}

func (h *Handler) AdminNotices(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	scope, ok := middleware.AdminFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	notices, err := h.DB.GetNoticesByPanchayath(r.Context(), scope.PanchayathID)
	if err != nil {
		notices = []models.Notice{}
	}

	data := h.pageData(w, r, session)
	data["Notices"] = notices

	h.render(w, "admin_notices.html", data)
}

func (h *Handler) AdminNoticeCreate(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	scope, ok := middleware.AdminFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	r.ParseMultipartForm(20 << 20)

	form := models.NoticeForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	if err := h.Validate.Struct(form); err != nil {
		addFlash(session, "danger", "Title and description are required.")
		session.Save(r, w)
		http.Redirect(w, r, "/admin/notices", http.StatusSeeOther)
		return
	}

	var bannerPath *string
	if _, fileHeader, err := r.FormFile("banner"); err == nil {
		saved, err := storage.SaveUpload(fileHeader, uploadsDir)
		if err != nil {
			addFlash(session, "danger", err.Error())
			session.Save(r, w)
			http.Redirect(w, r, "/admin/notices", http.StatusSeeOther)
			return
		}
		bannerPath = &saved
	}

	notice := &models.Notice{
		PanchayathID: scope.PanchayathID,
		Title:        form.Title,
		Description:  form.Description,
		BannerPath:   bannerPath,
	}

	if err := h.DB.CreateNotice(r.Context(), notice); err != nil {
		addFlash(session, "danger", "Could not publish the notice. Please try again.")
	} else {
		addFlash(session, "success", "Notice published successfully")
	}
	session.Save(r, w)

	http.Redirect(w, r, "/admin/notices", http.StatusSeeOther)
}

func (h *Handler) AdminNoticeDelete(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	scope, ok := middleware.AdminFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	// Not-found and cross-tenant deletes are indistinguishable on purpose.
	deleted, err := h.DB.DeleteNotice(r.Context(), id, scope.PanchayathID)
	if err != nil || !deleted {
		addFlash(session, "danger", "Notice not found or unauthorized")
	} else {
		addFlash(session, "success", "Notice deleted")
	}
	session.Save(r, w)

	http.Redirect(w, r, "/admin/notices", http.StatusSeeOther)
}

func (h *Handler) AdminIssueDetail(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	scope, ok := middleware.AdminFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	issue, err := h.DB.GetIssueForPanchayath(r.Context(), id, scope.PanchayathID)
	if err != nil {
		addFlash(session, "danger", "Issue not found")
		session.Save(r, w)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	data := h.pageData(w, r, session)
	data["Issue"] = issue

	h.render(w, "admin_issue_detail.html", data)
}

func (h *Handler) AdminUpdateIssue(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	scope, ok := middleware.AdminFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	status := r.FormValue("status")

	updated, err := h.DB.UpdateIssueStatus(r.Context(), id, scope.PanchayathID, status)
	if err != nil || !updated {
		addFlash(session, "danger", "Issue not found")
	} else {
		addFlash(session, "success", "Status updated")
	}
	session.Save(r, w)

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// AdminLogout clears the whole session, citizen keys included.
func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")

	session.Options.MaxAge = -1
	session.Save(r, w)

	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
