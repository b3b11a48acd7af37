package ops

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/starred/internal/db"
	"github.com/hpungsan/starred/internal/errors"
	"github.com/hpungsan/starred/internal/render"
	"github.com/hpungsan/starred/internal/star"
)

// RunInput contains parameters for one pipeline run.
type RunInput struct {
	Username   string // falls back to config
	Token      string // required for publish mode
	Sort       string // date|name|stars, falls back to config
	Format     string // table|list, falls back to config
	Repository string // non-empty triggers publish mode
	Message    string // commit message override for publish mode
	Output     string // local output path; empty means stdout
	Launch     bool   // open the repository page after publishing
}

// RunOutput contains the result of one pipeline run.
type RunOutput struct {
	Total      int    `json:"total"`
	Changed    bool   `json:"changed"`
	Published  bool   `json:"published"`
	RepoURL    string `json:"repo_url,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
}

// Run executes the pipeline: fetch, aggregate, compare against the stored
// snapshot, render, and publish or write locally.
func Run(ctx context.Context, deps Deps, input RunInput) (*RunOutput, error) {
	username, err := resolveUsername(deps, input.Username)
	if err != nil {
		return nil, err
	}

	sortMode, format, err := resolveModes(deps, input.Sort, input.Format)
	if err != nil {
		return nil, err
	}

	publishing := input.Repository != ""
	if publishing && input.Token == "" {
		return nil, errors.NewTokenRequired()
	}

	records, err := deps.Fetcher.ListStarred(ctx, username)
	if err != nil {
		return nil, err
	}

	now := deps.now()
	today := now.Format("2006-01-02")

	list := star.Aggregate(records, sortMode)
	snap := star.TakeSnapshot(records)

	stored, err := db.LatestSnapshot(deps.DB)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	changed := stored == nil || !snap.Equal(stored.Snapshot)

	// An unchanged star list in publish mode would produce a no-op commit.
	if !changed && publishing {
		return nil, errors.NewNoChange(today)
	}
	if changed {
		if _, err := db.SaveSnapshot(deps.DB, snap, now); err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	doc := render.Document{
		List:     list,
		Username: username,
		Format:   format,
		Date:     now,
	}

	output := &RunOutput{Total: list.Total, Changed: changed}

	if publishing {
		var buf bytes.Buffer
		if err := render.Render(&buf, doc); err != nil {
			return nil, errors.NewInternal(err)
		}

		result, err := Publish(ctx, deps.Host, PublishInput{
			Owner:      username,
			Repository: input.Repository,
			Message:    input.Message,
			Today:      today,
			Content:    buf.Bytes(),
		})
		if err != nil {
			return nil, err
		}

		output.Published = true
		output.RepoURL = result.RepoURL
		if input.Launch && deps.OpenURL != nil {
			// A browser that fails to open does not fail the publish.
			_ = deps.OpenURL(result.RepoURL)
		}
		return output, nil
	}

	sink, cleanup, err := outputSink(deps, input.Output)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := render.Render(sink, doc); err != nil {
		return nil, errors.NewInternal(err)
	}
	output.OutputPath = input.Output
	return output, nil
}

// resolveUsername falls back to the configured username when none is given.
func resolveUsername(deps Deps, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" && deps.Config != nil {
		username = deps.Config.Username
	}
	if username == "" {
		return "", errors.NewInvalidRequest("username is required")
	}
	return username, nil
}

// resolveModes applies config defaults and validates sort and format.
func resolveModes(deps Deps, sortStr, formatStr string) (star.SortMode, render.Format, error) {
	if deps.Config != nil {
		if sortStr == "" {
			sortStr = deps.Config.DefaultSort
		}
		if formatStr == "" {
			formatStr = deps.Config.DefaultFormat
		}
	}

	sortMode, err := star.ParseSortMode(sortStr)
	if err != nil {
		return "", "", err
	}
	format, err := render.ParseFormat(formatStr)
	if err != nil {
		return "", "", err
	}
	return sortMode, format, nil
}

// outputSink returns the writer for local output: a created file when a
// path is given (parent directories made as needed), stdout otherwise.
func outputSink(deps Deps, path string) (sink io.Writer, cleanup func(), err error) {
	if path == "" {
		return deps.Stdout, func() {}, nil
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, errors.NewInternal(fmt.Errorf("failed to create output directory: %w", err))
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.NewInternal(fmt.Errorf("failed to create output file: %w", err))
	}
	return file, func() { file.Close() }, nil
}
