package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/fansub/internal"
	"github.com/starford/fansub/internal/noteservice"
	pkgconfig "github.com/starford/fansub/pkg/config"
)

const defaultConfigPath = "config/config.yaml"

// loadConfig reads the config file. The default path may be absent, in
// which case built-in defaults are used.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadOptional(configPath, cfg, cmd.IsSet("config")); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if v := cmd.String("vault"); v != "" {
		cfg.Vault.Path = v
	}
	return cfg, nil
}

// withApp builds the application for a subcommand and closes it afterwards.
func withApp(fn func(ctx context.Context, cmd *cli.Command, app *internal.App) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app, err := internal.New(internal.WithConfig(cfg))
		if err != nil {
			return fmt.Errorf("app init error: %w", err)
		}
		defer app.Close()
		return fn(ctx, cmd, app)
	}
}

func newNote(ctx context.Context, cmd *cli.Command, app *internal.App) error {
	if !cmd.IsSet("title") && !cmd.IsSet("pages") {
		return app.NewNote(ctx, nil)
	}
	return app.NewNote(ctx, &noteservice.NoteInput{
		Title:      cmd.String("title"),
		Author:     cmd.String("author"),
		TotalPages: cmd.String("pages"),
		Folder:     cmd.String("folder"),
	})
}

func main() {
	cmd := &cli.Command{
		Name:  "fansub",
		Usage: "Generate translation notes with one section per page inside a Markdown vault",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: defaultConfigPath,
				Value:       defaultConfigPath,
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "vault",
				Usage:   "Vault directory (overrides vault.path)",
				Sources: cli.EnvVars("FANSUB_VAULT"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "new",
				Usage: "Open the note dialog, or create directly when --title or --pages is given",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Note title"},
					&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "Author"},
					&cli.StringFlag{Name: "pages", Aliases: []string{"p"}, Usage: "Total pages (greater than 0)"},
					&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Destination folder (default: last used)"},
				},
				Action: withApp(newNote),
			},
			{
				Name:  "folders",
				Usage: "List destination folders; * marks the preselected one",
				Action: withApp(func(ctx context.Context, _ *cli.Command, app *internal.App) error {
					return app.Folders(ctx)
				}),
			},
			{
				Name:  "list",
				Usage: "List translation notes",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Only notes under this folder"},
					&cli.BoolFlag{Name: "json", Usage: "Print JSON instead of a table"},
				},
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					return app.List(ctx, cmd.String("folder"), cmd.Bool("json"))
				}),
			},
			{
				Name:  "serve",
				Usage: "Serve the HTTP API with live vault events",
				Action: withApp(func(ctx context.Context, _ *cli.Command, app *internal.App) error {
					return app.Serve(ctx)
				}),
			},
			{
				Name:  "mcp",
				Usage: "Serve MCP tools over stdio",
				Action: withApp(func(ctx context.Context, _ *cli.Command, app *internal.App) error {
					return app.ServeMCP(ctx)
				}),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
