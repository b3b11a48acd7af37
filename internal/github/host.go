package github

import (
	"context"

	"github.com/google/go-github/v53/github"

	"github.com/hpungsan/starred/internal/errors"
)

// Repo is a handle on a remote repository.
type Repo struct {
	Owner   string
	Name    string
	HTMLURL string
}

// GetRepository looks up owner/name. A missing repository comes back as a
// NOT_FOUND error, which the publish policy treats as "create it".
func (c *Client) GetRepository(ctx context.Context, owner, name string) (*Repo, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NewRepoNotFound(owner, name)
		}
		return nil, classify(err)
	}
	return &Repo{
		Owner:   repo.GetOwner().GetLogin(),
		Name:    repo.GetName(),
		HTMLURL: repo.GetHTMLURL(),
	}, nil
}

// CreateRepository creates a repository under the authenticated user.
func (c *Client) CreateRepository(ctx context.Context, name, description string) (*Repo, error) {
	repo, _, err := c.gh.Repositories.Create(ctx, "", &github.Repository{
		Name:        github.String(name),
		Description: github.String(description),
	})
	if err != nil {
		return nil, classify(err)
	}
	return &Repo{
		Owner:   repo.GetOwner().GetLogin(),
		Name:    repo.GetName(),
		HTMLURL: repo.GetHTMLURL(),
	}, nil
}

// FileExists reports whether path exists in the repository.
func (c *Client) FileExists(ctx context.Context, repo *Repo, path string) (bool, error) {
	_, _, _, err := c.gh.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, nil)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, classify(err)
	}
	return true, nil
}

// CreateFile commits a new file to the repository.
func (c *Client) CreateFile(ctx context.Context, repo *Repo, path, message string, content []byte) error {
	_, _, err := c.gh.Repositories.CreateFile(ctx, repo.Owner, repo.Name, path, &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

// UpdateReadme replaces the repository's README with content.
func (c *Client) UpdateReadme(ctx context.Context, repo *Repo, message string, content []byte) error {
	readme, _, err := c.gh.Repositories.GetReadme(ctx, repo.Owner, repo.Name, nil)
	if err != nil {
		return classify(err)
	}

	_, _, err = c.gh.Repositories.UpdateFile(ctx, repo.Owner, repo.Name, readme.GetPath(), &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		SHA:     readme.SHA,
	})
	if err != nil {
		return classify(err)
	}
	return nil
}
