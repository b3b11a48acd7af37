package ops

import (
	"context"
	"fmt"

	"github.com/hpungsan/starred/internal/errors"
)

const (
	// archivePathFormat is the dated path of each immutable archive copy.
	archivePathFormat = "Archives/README-%s.md"

	// repoDescription seeds a repository created on first publish.
	repoDescription = "A curated list of my GitHub stars!"
)

// PublishInput contains parameters for the Publish operation.
type PublishInput struct {
	Owner      string
	Repository string
	Message    string // empty means "Add starred <today>"
	Today      string // ISO date
	Content    []byte
}

// PublishResult contains the result of the Publish operation.
type PublishResult struct {
	RepoURL string
	Created bool
}

// Publish commits content to the target repository as README.md plus a
// dated archive copy. At most one archive lands per calendar date; a second
// attempt on the same date is ALREADY_ARCHIVED and writes nothing.
func Publish(ctx context.Context, host RepoHost, input PublishInput) (*PublishResult, error) {
	archivePath := fmt.Sprintf(archivePathFormat, input.Today)
	archiveMessage := "Archive starred " + input.Today

	message := input.Message
	if message == "" {
		message = "Add starred " + input.Today
	}

	repo, err := host.GetRepository(ctx, input.Owner, input.Repository)
	if err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}

		// First publish: create the repository and seed both documents.
		repo, err = host.CreateRepository(ctx, input.Repository, repoDescription)
		if err != nil {
			return nil, err
		}
		if err := host.CreateFile(ctx, repo, "README.md", "Add starred "+input.Today, input.Content); err != nil {
			return nil, err
		}
		if err := host.CreateFile(ctx, repo, archivePath, archiveMessage, input.Content); err != nil {
			return nil, err
		}
		return &PublishResult{RepoURL: repo.HTMLURL, Created: true}, nil
	}

	exists, err := host.FileExists(ctx, repo, archivePath)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewAlreadyArchived(archivePath)
	}

	if err := host.UpdateReadme(ctx, repo, message, input.Content); err != nil {
		return nil, err
	}
	if err := host.CreateFile(ctx, repo, archivePath, archiveMessage, input.Content); err != nil {
		return nil, err
	}

	return &PublishResult{RepoURL: repo.HTMLURL}, nil
}
