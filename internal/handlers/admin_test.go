package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/testutil"
)

func TestAdminLoginDashboardLogout(t *testing.T) {
	database, _, r := setup(t)

	p := testutil.CreateTestPanchayath(t, database, "Kumarakom")
	testutil.CreateTestAdmin(t, database, "kumarakom_admin", p.ID)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.PostForm("/admin/login", url.Values{
		"username": {"kumarakom_admin"},
		"password": {testutil.TestPassword},
	}))
	testutil.AssertRedirect(t, rec, "/admin")

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("admin login set no session cookie")
	}
	cookie := cookies[0]

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.Get("/admin", cookie))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on /admin after login, got %d", rec.Code)
	}

	// Logout clears the whole session; the rewritten cookie no longer passes
	// the guard.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.Get("/admin/logout", cookie))
	testutil.AssertRedirect(t, rec, "/admin/login")

	loggedOut := rec.Result().Cookies()
	if len(loggedOut) == 0 {
		t.Fatal("logout did not rewrite the session cookie")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.Get("/admin", loggedOut[0]))
	testutil.AssertRedirect(t, rec, "/admin/login")
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	database, _, r := setup(t)

	p := testutil.CreateTestPanchayath(t, database, "Kumarakom")
	testutil.CreateTestAdmin(t, database, "kumarakom_admin", p.ID)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.PostForm("/admin/login", url.Values{
		"username": {"kumarakom_admin"},
		"password": {"wrong"},
	}))
	testutil.AssertRedirect(t, rec, "/admin/login")
}

func TestNoticeCreateIsScopedToBoundPanchayath(t *testing.T) {
	database, store, r := setup(t)
	ctx := context.Background()

	p1 := testutil.CreateTestPanchayath(t, database, "Kumarakom")
	p2 := testutil.CreateTestPanchayath(t, database, "Aranmula")
	admin := testutil.CreateTestAdmin(t, database, "kumarakom_admin", p1.ID)
	cookie := testutil.AdminCookie(t, store, admin.ID, p1.ID)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.PostForm("/admin/notices", url.Values{
		"title":       {"Water supply maintenance"},
		"description": {"Supply off on Tuesday morning"},
	}, cookie))
	testutil.AssertRedirect(t, rec, "/admin/notices")

	own, err := database.GetNoticesByPanchayath(ctx, p1.ID)
	if err != nil {
		t.Fatalf("GetNoticesByPanchayath failed: %v", err)
	}
	if len(own) != 1 {
		t.Fatalf("expected 1 notice for the bound panchayath, got %d", len(own))
	}

	other, _ := database.GetNoticesByPanchayath(ctx, p2.ID)
	if len(other) != 0 {
		t.Errorf("notice leaked into another tenant: %d rows", len(other))
	}
}

func TestNoticeDeleteCrossTenantLeavesRow(t *testing.T) {
	database, store, r := setup(t)
	ctx := context.Background()

	p1 := testutil.CreateTestPanchayath(t, database, "Kumarakom")
	p2 := testutil.CreateTestPanchayath(t, database, "Aranmula")
	admin := testutil.CreateTestAdmin(t, database, "kumarakom_admin", p1.ID)
	cookie := testutil.AdminCookie(t, store, admin.ID, p1.ID)

	notice := testutil.CreateTestNotice(t, database, p2.ID, "Aranmula boat race")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.Get("/admin/notices/delete/"+itoa(notice.ID), cookie))
	testutil.AssertRedirect(t, rec, "/admin/notices")

	if _, err := database.GetNotice(ctx, notice.ID); err != nil {
		t.Error("cross-tenant delete removed the notice")
	}
}

func TestNoticeDeleteOwnTenant(t *testing.T) {
	database, store, r := setup(t)
	ctx := context.Background()

	p := testutil.CreateTestPanchayath(t, database, "Kumarakom")
	admin := testutil.CreateTestAdmin(t, database, "kumarakom_admin", p.ID)
	cookie := testutil.AdminCookie(t, store, admin.ID, p.ID)

	notice := testutil.CreateTestNotice(t, database, p.ID, "Gram sabha on Friday")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.Get("/admin/notices/delete/"+itoa(notice.ID), cookie))
	testutil.AssertRedirect(t, rec, "/admin/notices")

	if _, err := database.GetNotice(ctx, notice.ID); err == nil {
		t.Error("own-tenant delete left the notice in place")
	}
}

func TestIssueDetailIsTenantScoped(t *testing.T) {
	database, store, r := setup(t)

	p1 := testutil.CreateTestPanchayath(t, database, "Kumarakom")
	p2 := testutil.CreateTestPanchayath(t, database, "Aranmula")
	admin := testutil.CreateTestAdmin(t, database, "kumarakom_admin", p1.ID)
	cookie := testutil.AdminCookie(t, store, admin.ID, p1.ID)

	own := testutil.CreateTestIssue(t, database, p1.ID, nil)
	foreign := testutil.CreateTestIssue(t, database, p2.ID, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.Get("/admin/issue/"+itoa(own.ID), cookie))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for an own-tenant issue, got %d", rec.Code)
	}

	// Another tenant's issue is indistinguishable from a missing one.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.Get("/admin/issue/"+itoa(foreign.ID), cookie))
	testutil.AssertRedirect(t, rec, "/admin")
}

func TestStatusUpdateIsTenantScoped(t *testing.T) {
	database, store, r := setup(t)
	ctx := context.Background()

	p1 := testutil.CreateTestPanchayath(t, database, "Kumarakom")
	p2 := testutil.CreateTestPanchayath(t, database, "Aranmula")
	admin := testutil.CreateTestAdmin(t, database, "kumarakom_admin", p1.ID)
	cookie := testutil.AdminCookie(t, store, admin.ID, p1.ID)

	own := testutil.CreateTestIssue(t, database, p1.ID, nil)
	foreign := testutil.CreateTestIssue(t, database, p2.ID, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.PostForm("/admin/update/"+itoa(own.ID), url.Values{
		"status": {"In Progress"},
	}, cookie))
	testutil.AssertRedirect(t, rec, "/admin")

	updated, err := database.GetIssueForPanchayath(ctx, own.ID, p1.ID)
	if err != nil {
		t.Fatalf("GetIssueForPanchayath failed: %v", err)
	}
	if updated.Status != "In Progress" {
		t.Errorf("own-tenant update did not apply: status %s", updated.Status)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.PostForm("/admin/update/"+itoa(foreign.ID), url.Values{
		"status": {"Completed"},
	}, cookie))
	testutil.AssertRedirect(t, rec, "/admin")

	unchanged, err := database.GetIssueForPanchayath(ctx, foreign.ID, p2.ID)
	if err != nil {
		t.Fatalf("GetIssueForPanchayath failed: %v", err)
	}
	if unchanged.Status != "Pending" {
		t.Errorf("cross-tenant update mutated the issue: status %s", unchanged.Status)
	}
}

func TestDashboardRequiresAdmin(t *testing.T) {
	_, _, r := setup(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.Get("/admin"))
	testutil.AssertRedirect(t, rec, "/admin/login")
}
