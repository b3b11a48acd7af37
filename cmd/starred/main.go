package main

import (
	"fmt"
	"os"

	"github.com/hpungsan/starred/internal/config"
	"github.com/hpungsan/starred/internal/db"
	"github.com/hpungsan/starred/internal/github"
	"github.com/hpungsan/starred/internal/ops"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	baseDir, err := config.BaseDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Init(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	newClient := func(token string) (ops.StarFetcher, ops.RepoHost) {
		client := github.NewClient(token)
		return client, client
	}

	app := newCLIApp(database, cfg, newClient)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
