package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/solmara/cuna/internal"
	pkgconfig "github.com/solmara/cuna/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runServer(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runBackupCreate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path, err := internal.CreateBackupNow(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runBackupList(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	archives, err := internal.ListBackupsNow(cfg)
	if err != nil {
		return err
	}
	for _, a := range archives {
		fmt.Printf("%s\t%s\n", a.Timestamp.Format("2006-01-02 15:04:05"), a.Filename)
	}
	return nil
}

func runBackupPrune(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	deleted, err := internal.PruneBackupsNow(cfg, int(cmd.Int("keep")))
	if err != nil {
		return err
	}
	fmt.Printf("deleted %d archive(s)\n", deleted)
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.ServeMCP(cfg)
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:   "cuna",
		Usage:  "Personal pregnancy journal with media uploads and daily archive backups",
		Action: runServer,
		Flags:  []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:  "backup",
				Usage: "Manage dataset archives",
				Commands: []*cli.Command{
					{
						Name:   "create",
						Usage:  "Build one archive now and print its path",
						Action: runBackupCreate,
					},
					{
						Name:   "list",
						Usage:  "List archives on disk, newest first",
						Action: runBackupList,
					},
					{
						Name:   "prune",
						Usage:  "Delete archives beyond the most recent N",
						Action: runBackupPrune,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "keep",
								Usage: "How many archives to keep",
								Value: 10,
							},
						},
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve admin tools over MCP stdio",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
