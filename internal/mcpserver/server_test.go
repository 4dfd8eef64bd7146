package mcpserver

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/solmara/cuna/internal/backup"
	"github.com/solmara/cuna/internal/models"
	"github.com/solmara/cuna/internal/repository"
	"github.com/solmara/cuna/internal/testutil"
)

func testServer(t *testing.T) (*Server, *repository.Repo, uint) {
	t.Helper()
	repo, userID := testutil.Repo(t)
	backups := backup.NewService(repo, t.TempDir(), t.TempDir(), "1.0.0", testutil.Logger())
	return New(repo, backups, userID), repo, userID
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error

	switch name {
	case "create_backup":
		result, err = srv.createBackup(ctx, req)
	case "list_backups":
		result, err = srv.listBackups(ctx, req)
	case "prune_backups":
		result, err = srv.pruneBackups(ctx, req)
	case "add_journal_entry":
		result, err = srv.addJournalEntry(ctx, req)
	case "upcoming_appointments":
		result, err = srv.upcomingAppointments(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateAndListBackups(t *testing.T) {
	srv, _, _ := testServer(t)

	r := callTool(t, srv, "create_backup", map[string]interface{}{})
	if r.IsError {
		t.Fatalf("create_backup failed: %s", resultText(r))
	}
	path := resultText(r)
	if !strings.HasSuffix(path, ".zip") {
		t.Errorf("create result = %q", path)
	}

	r = callTool(t, srv, "list_backups", map[string]interface{}{})
	if !strings.Contains(resultText(r), "backup-") {
		t.Errorf("list result = %q", resultText(r))
	}
}

func TestPruneBackups(t *testing.T) {
	srv, _, _ := testServer(t)

	_ = callTool(t, srv, "create_backup", map[string]interface{}{})

	r := callTool(t, srv, "prune_backups", map[string]interface{}{"keep": 0.0})
	text := resultText(r)
	if text != "deleted 1 archive(s)" {
		t.Errorf("prune result = %q", text)
	}
}

func TestAddJournalEntry(t *testing.T) {
	srv, repo, userID := testServer(t)

	r := callTool(t, srv, "add_journal_entry", map[string]interface{}{
		"title": "Quiet day",
		"text":  "rested mostly",
		"date":  "2026-03-20",
		"mood":  "Tired",
	})
	if r.IsError {
		t.Fatalf("add_journal_entry failed: %s", resultText(r))
	}

	entries, err := repo.Journal.List(userID, repository.JournalFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Mood != "Tired" || entries[0].Energy != 5 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestAddJournalEntryRequiresTitle(t *testing.T) {
	srv, _, _ := testServer(t)

	r := callTool(t, srv, "add_journal_entry", map[string]interface{}{
		"text": "no title",
	})
	if !r.IsError {
		t.Error("expected error for missing title")
	}
}

func TestAddJournalEntryRejectsBadDate(t *testing.T) {
	srv, _, _ := testServer(t)

	r := callTool(t, srv, "add_journal_entry", map[string]interface{}{
		"title": "t",
		"text":  "x",
		"date":  "last tuesday",
	})
	if !r.IsError {
		t.Error("expected error for unparsable date")
	}
}

func TestUpcomingAppointments(t *testing.T) {
	srv, repo, userID := testServer(t)

	r := callTool(t, srv, "upcoming_appointments", map[string]interface{}{})
	if resultText(r) != "no upcoming appointments" {
		t.Errorf("empty result = %q", resultText(r))
	}

	if err := repo.Appointments.Create(&models.Appointment{
		UserID: userID,
		Title:  "Next checkup",
		Date:   time.Now().Add(48 * time.Hour),
	}); err != nil {
		t.Fatal(err)
	}

	r = callTool(t, srv, "upcoming_appointments", map[string]interface{}{"limit": 3.0})
	if !strings.Contains(resultText(r), "Next checkup") {
		t.Errorf("result = %q", resultText(r))
	}
}
