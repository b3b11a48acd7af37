// Package github adapts the GitHub API to the pipeline's fetcher and
// repository-host contracts.
package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v53/github"
	"golang.org/x/oauth2"

	"github.com/hpungsan/starred/internal/errors"
)

// Client wraps an authenticated (or anonymous) GitHub API client.
type Client struct {
	gh *github.Client
}

// NewClient creates a GitHub client. An empty token means anonymous access
// with the lower unauthenticated rate limit.
func NewClient(token string) *Client {
	var client *github.Client

	if token == "" {
		client = github.NewClient(nil)
	} else {
		ctx := context.Background()
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc := oauth2.NewClient(ctx, ts)
		client = github.NewClient(tc)
	}

	return &Client{gh: client}
}

// newTestClient wires the wrapped client to a test server base URL.
func newTestClient(gh *github.Client) *Client {
	return &Client{gh: gh}
}

// classify maps go-github errors onto the error taxonomy. Authorization
// failures and rate limiting abort the run as ACCESS_DENIED.
func classify(err error) error {
	switch e := err.(type) {
	case *github.RateLimitError, *github.AbuseRateLimitError:
		return errors.NewAccessDenied(err)
	case *github.ErrorResponse:
		if e.Response != nil {
			switch e.Response.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return errors.NewAccessDenied(err)
			}
		}
	}
	return errors.NewInternal(err)
}

// isNotFound reports whether err is a 404 from the API.
func isNotFound(err error) bool {
	if e, ok := err.(*github.ErrorResponse); ok {
		return e.Response != nil && e.Response.StatusCode == http.StatusNotFound
	}
	return false
}
