// Package mcpserver provides an MCP (Model Context Protocol) server exposing
// Cuna's journal and backup operations for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/solmara/cuna/internal/backup"
	"github.com/solmara/cuna/internal/models"
	"github.com/solmara/cuna/internal/repository"
)

// Server wraps the MCP server with Cuna tools.
type Server struct {
	mcp     *server.MCPServer
	repo    *repository.Repo
	backups *backup.Service
	userID  uint
}

// New creates a new MCP server with all Cuna tools registered.
func New(repo *repository.Repo, backups *backup.Service, userID uint) *Server {
	s := &Server{repo: repo, backups: backups, userID: userID}

	s.mcp = server.NewMCPServer(
		"Cuna",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("create_backup",
		mcp.WithDescription("Build a full dataset archive now and return its path."),
	), s.createBackup)

	s.mcp.AddTool(mcp.NewTool("list_backups",
		mcp.WithDescription("List archives on disk, newest first."),
	), s.listBackups)

	s.mcp.AddTool(mcp.NewTool("prune_backups",
		mcp.WithDescription("Delete archives beyond the most recent N."),
		mcp.WithNumber("keep", mcp.Description("How many archives to keep (default 10)")),
	), s.pruneBackups)

	s.mcp.AddTool(mcp.NewTool("add_journal_entry",
		mcp.WithDescription("Record a dated journal entry."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Entry title")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Entry body text")),
		mcp.WithString("date", mcp.Description("Entry date, RFC 3339 or YYYY-MM-DD (default today)")),
		mcp.WithString("mood", mcp.Description("One of Happy, Neutral, Sad, Excited, Anxious, Tired")),
	), s.addJournalEntry)

	s.mcp.AddTool(mcp.NewTool("upcoming_appointments",
		mcp.WithDescription("List pending appointments from now on, soonest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum results (default 5)")),
	), s.upcomingAppointments)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) createBackup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := s.backups.Create(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(path), nil
}

func (s *Server) listBackups(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	archives, err := s.backups.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(archives, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) pruneBackups(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keep := req.GetInt("keep", 10)
	deleted, err := s.backups.Prune(keep)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted %d archive(s)", deleted)), nil
}

func (s *Server) addJournalEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	date := time.Now()
	if raw := req.GetString("date", ""); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date: %s", raw)), nil
		}
		date = parsed
	}

	entry := models.JournalEntry{
		Title:  title,
		Text:   text,
		Date:   date,
		Mood:   req.GetString("mood", "Neutral"),
		Energy: 5,
		UserID: s.userID,
	}
	if err := s.repo.Journal.Create(&entry); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created journal entry %d", entry.ID)), nil
}

func (s *Server) upcomingAppointments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 5)
	appointments, err := s.repo.Appointments.Upcoming(s.userID, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(appointments) == 0 {
		return mcp.NewToolResultText("no upcoming appointments"), nil
	}
	out, _ := json.MarshalIndent(appointments, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
