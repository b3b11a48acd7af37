// Package ops implements the pipeline: fetch stars, aggregate, detect
// changes against the stored snapshot, render, and optionally publish.
package ops

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/hpungsan/starred/internal/config"
	"github.com/hpungsan/starred/internal/github"
	"github.com/hpungsan/starred/internal/star"
)

// StarFetcher lists a user's starred repositories, newest star first.
type StarFetcher interface {
	ListStarred(ctx context.Context, username string) ([]star.Record, error)
}

// RepoHost is the narrow publishing contract against the hosting service.
// GetRepository reports a missing repository as a NOT_FOUND error, which
// the publish policy treats as "create it".
type RepoHost interface {
	GetRepository(ctx context.Context, owner, name string) (*github.Repo, error)
	CreateRepository(ctx context.Context, name, description string) (*github.Repo, error)
	FileExists(ctx context.Context, repo *github.Repo, path string) (bool, error)
	CreateFile(ctx context.Context, repo *github.Repo, path, message string, content []byte) error
	UpdateReadme(ctx context.Context, repo *github.Repo, message string, content []byte) error
}

// Deps carries the collaborators a run needs. Stdout is the sink for local
// output; rendering never swaps process-wide streams.
type Deps struct {
	Fetcher StarFetcher
	Host    RepoHost
	DB      *sql.DB
	Config  *config.Config
	Stdout  io.Writer

	// Now defaults to time.Now; tests pin it.
	Now func() time.Time

	// OpenURL opens a page in the user's browser. Nil disables --launch.
	OpenURL func(url string) error
}

// now returns the pinned or wall clock time.
func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
