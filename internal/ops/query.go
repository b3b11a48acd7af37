package ops

import (
	"bytes"
	"context"
	"time"

	"github.com/hpungsan/starred/internal/db"
	"github.com/hpungsan/starred/internal/errors"
	"github.com/hpungsan/starred/internal/render"
	"github.com/hpungsan/starred/internal/star"
)

// Read-only operations backing the MCP tools. None of them write a
// snapshot; only Run advances the change-detection baseline.

// ListInput contains parameters for a listing.
type ListInput struct {
	Username string
	Sort     string
}

// LanguageGroup is one language bucket in a listing.
type LanguageGroup struct {
	Language string        `json:"language"`
	Count    int           `json:"count"`
	Repos    []star.Record `json:"repos"`
}

// ListOutput contains the grouped starred repositories.
type ListOutput struct {
	Username string          `json:"username"`
	Total    int             `json:"total"`
	Groups   []LanguageGroup `json:"groups"`
}

// List fetches and groups a user's starred repositories without touching
// the stored snapshot.
func List(ctx context.Context, deps Deps, input ListInput) (*ListOutput, error) {
	username, err := resolveUsername(deps, input.Username)
	if err != nil {
		return nil, err
	}
	sortMode, _, err := resolveModes(deps, input.Sort, "")
	if err != nil {
		return nil, err
	}

	records, err := deps.Fetcher.ListStarred(ctx, username)
	if err != nil {
		return nil, err
	}

	list := star.Aggregate(records, sortMode)
	groups := make([]LanguageGroup, 0, len(list.Languages))
	for _, lang := range list.Languages {
		groups = append(groups, LanguageGroup{
			Language: lang,
			Count:    len(list.Groups[lang]),
			Repos:    list.Groups[lang],
		})
	}

	return &ListOutput{Username: username, Total: list.Total, Groups: groups}, nil
}

// RenderInput contains parameters for rendering.
type RenderInput struct {
	Username string
	Sort     string
	Format   string
}

// RenderOutput contains the rendered document.
type RenderOutput struct {
	Username string `json:"username"`
	Total    int    `json:"total"`
	Markdown string `json:"markdown"`
}

// RenderDoc fetches, groups, and renders the markdown document without
// touching the stored snapshot.
func RenderDoc(ctx context.Context, deps Deps, input RenderInput) (*RenderOutput, error) {
	username, err := resolveUsername(deps, input.Username)
	if err != nil {
		return nil, err
	}
	sortMode, format, err := resolveModes(deps, input.Sort, input.Format)
	if err != nil {
		return nil, err
	}

	records, err := deps.Fetcher.ListStarred(ctx, username)
	if err != nil {
		return nil, err
	}

	list := star.Aggregate(records, sortMode)

	var buf bytes.Buffer
	doc := render.Document{
		List:     list,
		Username: username,
		Format:   format,
		Date:     deps.now(),
	}
	if err := render.Render(&buf, doc); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &RenderOutput{Username: username, Total: list.Total, Markdown: buf.String()}, nil
}

// CheckInput contains parameters for a change check.
type CheckInput struct {
	Username string
}

// CheckOutput reports whether the starred list diverged from the last
// stored snapshot.
type CheckOutput struct {
	Username     string `json:"username"`
	Total        int    `json:"total"`
	Changed      bool   `json:"changed"`
	LastSnapshot string `json:"last_snapshot,omitempty"`
}

// Check compares the current starred list against the latest stored
// snapshot. It never saves; a later Run records the new baseline.
func Check(ctx context.Context, deps Deps, input CheckInput) (*CheckOutput, error) {
	username, err := resolveUsername(deps, input.Username)
	if err != nil {
		return nil, err
	}

	records, err := deps.Fetcher.ListStarred(ctx, username)
	if err != nil {
		return nil, err
	}
	snap := star.TakeSnapshot(records)

	stored, err := db.LatestSnapshot(deps.DB)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	out := &CheckOutput{
		Username: username,
		Total:    len(records),
		Changed:  stored == nil || !snap.Equal(stored.Snapshot),
	}
	if stored != nil {
		out.LastSnapshot = time.Unix(stored.TakenAt, 0).UTC().Format(time.RFC3339)
	}
	return out, nil
}
