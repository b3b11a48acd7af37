package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v53/github"

	"github.com/hpungsan/starred/internal/errors"
)

// setupTestClient points a Client at a local test server.
func setupTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := gh.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return newTestClient(client)
}

func TestListStarred_MapsRecords(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat/starred", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"repo": {"name": "gin", "html_url": "https://github.com/gin-gonic/gin",
			          "description": "HTTP web framework", "language": "Go",
			          "stargazers_count": 70000, "owner": {"login": "gin-gonic"}}},
			{"repo": {"name": "dotfiles", "html_url": "https://github.com/octocat/dotfiles",
			          "stargazers_count": 12, "owner": {"login": "octocat"}}}
		]`)
	})
	client := setupTestClient(t, mux)

	records, err := client.ListStarred(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("ListStarred() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	first := records[0]
	if first.Name != "gin" || first.Owner != "gin-gonic" || first.Stars != 70000 {
		t.Errorf("records[0] = %+v", first)
	}
	if first.Language != "Go" {
		t.Errorf("Language = %q, want Go", first.Language)
	}
	if first.Order != 0 {
		t.Errorf("Order = %d, want 0", first.Order)
	}

	// Missing language and description stay empty; the aggregator applies
	// the fallback bucket later.
	second := records[1]
	if second.Language != "" || second.Description != "" {
		t.Errorf("records[1] = %+v, want empty language and description", second)
	}
	if second.Order != 1 {
		t.Errorf("Order = %d, want 1", second.Order)
	}
}

func TestListStarred_Paginates(t *testing.T) {
	mux := http.NewServeMux()
	var serverURL string
	mux.HandleFunc("/users/octocat/starred", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"repo": {"name": "second", "owner": {"login": "b"}}}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/users/octocat/starred?page=2>; rel="next"`, serverURL))
		fmt.Fprint(w, `[{"repo": {"name": "first", "owner": {"login": "a"}}}]`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	serverURL = server.URL

	client := gh.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL

	records, err := newTestClient(client).ListStarred(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("ListStarred() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Name != "first" || records[1].Name != "second" {
		t.Errorf("records = %v, want [first second]", records)
	}
	// Fetch order spans pages.
	if records[1].Order != 1 {
		t.Errorf("records[1].Order = %d, want 1", records[1].Order)
	}
}

func TestListStarred_BadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat/starred", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	})
	client := setupTestClient(t, mux)

	_, err := client.ListStarred(context.Background(), "octocat")
	if !errors.Is(err, errors.ErrAccessDenied) {
		t.Errorf("error = %v, want ACCESS_DENIED", err)
	}
}

func TestListStarred_Forbidden(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat/starred", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "insufficient scope"}`)
	})
	client := setupTestClient(t, mux)

	_, err := client.ListStarred(context.Background(), "octocat")
	if !errors.Is(err, errors.ErrAccessDenied) {
		t.Errorf("error = %v, want ACCESS_DENIED", err)
	}
}
