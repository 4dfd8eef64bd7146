package internal

import (
	"context"
	"log/slog"
	"os"

	"github.com/solmara/cuna/internal/backup"
	"github.com/solmara/cuna/internal/mcpserver"
)

// operatorLogger writes human-oriented logs to stderr for one-shot commands,
// keeping stdout free for command output (and for MCP stdio traffic).
func operatorLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// CreateBackupNow builds one archive on demand and returns its path.
func CreateBackupNow(ctx context.Context, cfg *Config) (string, error) {
	svc, err := buildServices(cfg, operatorLogger(cfg))
	if err != nil {
		return "", err
	}
	return svc.backups.Create(ctx)
}

// ListBackupsNow returns metadata for every archive on disk, newest first.
func ListBackupsNow(cfg *Config) ([]backup.ArchiveInfo, error) {
	svc, err := buildServices(cfg, operatorLogger(cfg))
	if err != nil {
		return nil, err
	}
	return svc.backups.List()
}

// PruneBackupsNow deletes archives beyond the keep most recent.
func PruneBackupsNow(cfg *Config, keep int) (int, error) {
	svc, err := buildServices(cfg, operatorLogger(cfg))
	if err != nil {
		return 0, err
	}
	return svc.backups.Prune(keep)
}

// ServeMCP runs the MCP admin surface on stdin/stdout until the client
// disconnects.
func ServeMCP(cfg *Config) error {
	svc, err := buildServices(cfg, operatorLogger(cfg))
	if err != nil {
		return err
	}
	srv := mcpserver.New(svc.repo, svc.backups, svc.userID)
	return srv.ServeStdio()
}
