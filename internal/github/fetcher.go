package github

import (
	"context"

	"github.com/google/go-github/v53/github"

	"github.com/hpungsan/starred/internal/star"
)

// starredPageSize is the API page size for star listing.
const starredPageSize = 100

// ListStarred fetches every repository username has starred, newest star
// first, and maps them to records with sequential fetch order.
func (c *Client) ListStarred(ctx context.Context, username string) ([]star.Record, error) {
	opts := &github.ActivityListStarredOptions{
		ListOptions: github.ListOptions{PerPage: starredPageSize},
	}

	var records []star.Record
	order := 0
	for {
		page, resp, err := c.gh.Activity.ListStarred(ctx, username, opts)
		if err != nil {
			return nil, classify(err)
		}

		for _, starred := range page {
			repo := starred.GetRepository()
			records = append(records, star.Record{
				Name:        repo.GetName(),
				URL:         repo.GetHTMLURL(),
				Description: repo.GetDescription(),
				Owner:       repo.GetOwner().GetLogin(),
				Stars:       repo.GetStargazersCount(),
				Language:    repo.GetLanguage(),
				Order:       order,
			})
			order++
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return records, nil
}
