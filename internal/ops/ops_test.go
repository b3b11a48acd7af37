package ops

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/hpungsan/starred/internal/config"
	"github.com/hpungsan/starred/internal/db"
	"github.com/hpungsan/starred/internal/errors"
	"github.com/hpungsan/starred/internal/github"
	"github.com/hpungsan/starred/internal/star"
)

// fakeFetcher serves a fixed record set.
type fakeFetcher struct {
	records []star.Record
	err     error
	calls   int
}

func (f *fakeFetcher) ListStarred(_ context.Context, _ string) ([]star.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]star.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

// fakeHost is an in-memory RepoHost recording every mutation.
type fakeHost struct {
	repos map[string]*github.Repo // owner/name
	files map[string][]byte       // owner/name:path

	createRepoCalls   int
	createFileCalls   int
	updateReadmeCalls int
	readmeMessage     string
	archiveMessage    string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		repos: make(map[string]*github.Repo),
		files: make(map[string][]byte),
	}
}

func (h *fakeHost) repoKey(owner, name string) string { return owner + "/" + name }

func (h *fakeHost) fileKey(repo *github.Repo, path string) string {
	return h.repoKey(repo.Owner, repo.Name) + ":" + path
}

func (h *fakeHost) addRepo(owner, name string) *github.Repo {
	repo := &github.Repo{
		Owner:   owner,
		Name:    name,
		HTMLURL: fmt.Sprintf("https://github.com/%s/%s", owner, name),
	}
	h.repos[h.repoKey(owner, name)] = repo
	return repo
}

func (h *fakeHost) GetRepository(_ context.Context, owner, name string) (*github.Repo, error) {
	if repo, ok := h.repos[h.repoKey(owner, name)]; ok {
		return repo, nil
	}
	return nil, errors.NewRepoNotFound(owner, name)
}

func (h *fakeHost) CreateRepository(_ context.Context, name, _ string) (*github.Repo, error) {
	h.createRepoCalls++
	return h.addRepo("octocat", name), nil
}

func (h *fakeHost) FileExists(_ context.Context, repo *github.Repo, path string) (bool, error) {
	_, ok := h.files[h.fileKey(repo, path)]
	return ok, nil
}

func (h *fakeHost) CreateFile(_ context.Context, repo *github.Repo, path, message string, content []byte) error {
	h.createFileCalls++
	h.files[h.fileKey(repo, path)] = content
	if path != "README.md" {
		h.archiveMessage = message
	}
	return nil
}

func (h *fakeHost) UpdateReadme(_ context.Context, repo *github.Repo, message string, content []byte) error {
	h.updateReadmeCalls++
	h.readmeMessage = message
	h.files[h.fileKey(repo, "README.md")] = content
	return nil
}

// setupTestDB creates a temporary snapshot store for testing.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testRecords() []star.Record {
	return []star.Record{
		{Name: "gin", URL: "https://github.com/gin-gonic/gin", Description: "HTTP web framework", Owner: "gin-gonic", Stars: 70000, Language: "Go", Order: 0},
		{Name: "flask", URL: "https://github.com/pallets/flask", Description: "WSGI framework", Owner: "pallets", Stars: 65000, Language: "Python", Order: 1},
		{Name: "dotfiles", URL: "https://github.com/octocat/dotfiles", Owner: "octocat", Stars: 12, Order: 2},
	}
}

func testDeps(t *testing.T, fetcher *fakeFetcher, host *fakeHost) Deps {
	t.Helper()
	return Deps{
		Fetcher: fetcher,
		Host:    host,
		DB:      setupTestDB(t),
		Config:  config.DefaultConfig(),
		Now:     func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}
