package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/urfave/cli/v2"

	"github.com/hpungsan/starred/internal/config"
	"github.com/hpungsan/starred/internal/errors"
	"github.com/hpungsan/starred/internal/mcp"
	"github.com/hpungsan/starred/internal/ops"
	"github.com/hpungsan/starred/internal/web"
)

// clientFactory builds the GitHub collaborators for a token. Tests swap it
// for fakes.
type clientFactory func(token string) (ops.StarFetcher, ops.RepoHost)

// newCLIApp creates the CLI application.
func newCLIApp(db *sql.DB, cfg *config.Config, newClient clientFactory) *cli.App {
	app := &cli.App{
		Name:    "starred",
		Usage:   "Create your own Awesome List of GitHub stars",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "GitHub username", EnvVars: []string{"STARRED_USERNAME"}},
			&cli.StringFlag{Name: "token", Aliases: []string{"t"}, Usage: "GitHub token, required with --repository", EnvVars: []string{"GITHUB_TOKEN"}},
			&cli.StringFlag{Name: "sort", Aliases: []string{"s"}, Usage: "Sort order within each language: date|name|stars"},
			&cli.StringFlag{Name: "type", Usage: "Section layout: table|list"},
			&cli.StringFlag{Name: "repository", Aliases: []string{"r"}, Usage: "Repository to push the list to"},
			&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "Commit message for the README update"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write the list to a file instead of stdout"},
			&cli.BoolFlag{Name: "launch", Aliases: []string{"l"}, Usage: "Open the repository page after publishing"},
		},
		Action: func(c *cli.Context) error {
			repository := c.String("repository")
			if repository == "" && cfg != nil {
				repository = cfg.Repository
			}

			fetcher, host := newClient(c.String("token"))
			deps := ops.Deps{
				Fetcher: fetcher,
				Host:    host,
				DB:      db,
				Config:  cfg,
				Stdout:  os.Stdout,
				OpenURL: browser.OpenURL,
			}

			input := ops.RunInput{
				Username:   c.String("username"),
				Token:      c.String("token"),
				Sort:       c.String("sort"),
				Format:     c.String("type"),
				Repository: repository,
				Message:    c.String("message"),
				Output:     c.String("output"),
				Launch:     c.Bool("launch"),
			}

			output, err := ops.Run(c.Context, deps, input)
			if err != nil {
				return outputError(err)
			}

			// Local stdout mode already wrote the document; a summary
			// would corrupt it.
			if output.Published || output.OutputPath != "" {
				return outputJSON(output)
			}
			return nil
		},
		Commands: []*cli.Command{
			mcpCmd(db, cfg, newClient),
			serveCmd(db, cfg, newClient),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// mcpCmd creates the mcp command, a stdio server exposing read-only tools.
func mcpCmd(db *sql.DB, cfg *config.Config, newClient clientFactory) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run an MCP stdio server with read-only star tools",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token", Aliases: []string{"t"}, Usage: "GitHub token for a higher rate limit", EnvVars: []string{"GITHUB_TOKEN"}},
		},
		Action: func(c *cli.Context) error {
			fetcher, _ := newClient(c.String("token"))
			deps := ops.Deps{
				Fetcher: fetcher,
				DB:      db,
				Config:  cfg,
			}
			return mcp.Run(deps, Version)
		},
	}
}

// serveCmd creates the serve command, a local HTML preview of the list.
func serveCmd(db *sql.DB, cfg *config.Config, newClient clientFactory) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a local HTML preview of the list with snapshot history",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token", Aliases: []string{"t"}, Usage: "GitHub token for a higher rate limit", EnvVars: []string{"GITHUB_TOKEN"}},
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind to"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 4040, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			fetcher, _ := newClient(c.String("token"))
			deps := ops.Deps{
				Fetcher: fetcher,
				DB:      db,
				Config:  cfg,
			}
			return web.Run(web.NewServer(deps, Version, c.String("bind"), c.Int("port")))
		},
	}
}

// outputJSON prints a value as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError converts an error to a CLI exit error with code formatting.
func outputError(err error) error {
	if starErr, ok := err.(*errors.StarredError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", starErr.Code, starErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
