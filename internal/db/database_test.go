package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/db"
	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/testutil"
)

func TestStatsWithNoIssues(t *testing.T) {
	database := testutil.SetupTestDB(t)
	testutil.CreateTestPanchayath(t, database, "Kumarakom")

	stats, err := database.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.TotalIssues != 0 {
		t.Errorf("expected 0 issues, got %d", stats.TotalIssues)
	}
	if stats.ResolutionRate != 0 {
		t.Errorf("expected 0%% resolution with no issues, got %d", stats.ResolutionRate)
	}
	if stats.TotalPanchayaths != 1 {
		t.Errorf("expected 1 panchayath, got %d", stats.TotalPanchayaths)
	}
}

func TestStatsTruncatesResolutionRate(t *testing.T) {
	database := testutil.SetupTestDB(t)
	ctx := context.Background()
	p := testutil.CreateTestPanchayath(t, database, "Aranmula")

	for i := 0; i < 3; i++ {
		testutil.CreateTestIssue(t, database, p.ID, nil)
	}
	issue := testutil.CreateTestIssue(t, database, p.ID, nil)
	if _, err := database.UpdateIssueStatus(ctx, issue.ID, p.ID, "Completed"); err != nil {
		t.Fatalf("UpdateIssueStatus failed: %v", err)
	}

	stats, err := database.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	// 1 of 4 resolved: 25, no rounding surprises; 1 of 3 would be 33.
	if stats.ResolvedIssues != 1 {
		t.Errorf("expected 1 resolved issue, got %d", stats.ResolvedIssues)
	}
	if stats.ResolutionRate != 25 {
		t.Errorf("expected 25%%, got %d", stats.ResolutionRate)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	database := testutil.SetupTestDB(t)
	ctx := context.Background()

	testutil.CreateTestUser(t, database, "Anil", "anil@example.com")

	_, err := database.CreateUser(ctx, "Other Anil", "anil@example.com", "9999999999", "hash")
	if !errors.Is(err, db.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	count, err := database.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 user row, got %d", count)
	}
}

func TestSchemaIsIdempotent(t *testing.T) {
	testutil.SetupTestDB(t)

	// Opening the store again replays the full migration against an existing
	// schema; every statement must be additive.
	again, err := db.NewWithURL(testutil.TestDBURL())
	if err != nil {
		t.Fatalf("second migration pass failed: %v", err)
	}
	again.Close()
}

func TestIssueQueriesAreTenantScoped(t *testing.T) {
	database := testutil.SetupTestDB(t)
	ctx := context.Background()

	p1 := testutil.CreateTestPanchayath(t, database, "Kumarakom")
	p2 := testutil.CreateTestPanchayath(t, database, "Aranmula")
	testutil.CreateTestIssue(t, database, p1.ID, nil)
	testutil.CreateTestIssue(t, database, p1.ID, nil)
	other := testutil.CreateTestIssue(t, database, p2.ID, nil)

	issues, err := database.GetIssuesByPanchayath(ctx, p1.ID)
	if err != nil {
		t.Fatalf("GetIssuesByPanchayath failed: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues for p1, got %d", len(issues))
	}
	for _, i := range issues {
		if i.PanchayathID != p1.ID {
			t.Errorf("issue %d belongs to panchayath %d, not %d", i.ID, i.PanchayathID, p1.ID)
		}
	}

	if _, err := database.GetIssueForPanchayath(ctx, other.ID, p1.ID); err == nil {
		t.Error("cross-tenant issue lookup should fail")
	}
}

func TestDeleteNoticeScopedToTenant(t *testing.T) {
	database := testutil.SetupTestDB(t)
	ctx := context.Background()

	p1 := testutil.CreateTestPanchayath(t, database, "Kumarakom")
	p2 := testutil.CreateTestPanchayath(t, database, "Aranmula")
	notice := testutil.CreateTestNotice(t, database, p2.ID, "Water supply maintenance")

	deleted, err := database.DeleteNotice(ctx, notice.ID, p1.ID)
	if err != nil {
		t.Fatalf("DeleteNotice failed: %v", err)
	}
	if deleted {
		t.Error("cross-tenant delete reported success")
	}
	if _, err := database.GetNotice(ctx, notice.ID); err != nil {
		t.Error("cross-tenant delete removed the row")
	}

	deleted, err = database.DeleteNotice(ctx, notice.ID, p2.ID)
	if err != nil || !deleted {
		t.Fatalf("own-tenant delete failed: deleted=%v err=%v", deleted, err)
	}
}
