// internal/storage/github.go
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/akeath18/HPE-assets/internal/config"
)

const githubAPIVersion = "2022-11-28"

// githubStore implements PlanStore against the GitHub contents API. The blob
// sha returned by the lookup is the version token; the PUT carries it back as
// the precondition, so a stale sha is rejected by GitHub with a conflict.
type githubStore struct {
	client *http.Client
	token  string
	owner  string
	repo   string
	branch string
	path   string
}

// NewGitHubStore creates a plan store backed by a file in a GitHub repo.
func NewGitHubStore(cfg config.GitHubConfig) (PlanStore, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("github token is not configured")
	}
	if cfg.Owner == "" || cfg.Repo == "" || cfg.FilePath == "" {
		return nil, fmt.Errorf("github owner, repo, and file path are required")
	}

	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}

	return &githubStore{
		client: &http.Client{Timeout: 30 * time.Second},
		token:  cfg.Token,
		owner:  cfg.Owner,
		repo:   cfg.Repo,
		branch: branch,
		path:   cfg.FilePath,
	}, nil
}

// contentLookup is the subset of the contents API response we care about.
type contentLookup struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

type updateRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha"`
	Branch  string `json:"branch"`
}

type updateResponse struct {
	Commit struct {
		SHA     string `json:"sha"`
		HTMLURL string `json:"html_url"`
	} `json:"commit"`
}

func (g *githubStore) Read(ctx context.Context) (*Snapshot, error) {
	lookupURL := g.contentURL() + "?ref=" + url.QueryEscape(g.branch)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, err
	}
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github file lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github file lookup failed: %s", apiErrorMessage(resp))
	}

	var lookup contentLookup
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return nil, fmt.Errorf("github file lookup failed: %w", err)
	}

	// The contents API wraps base64 at 60 columns; strip the newlines first.
	content, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(lookup.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("github file lookup failed: decode content: %w", err)
	}

	return &Snapshot{Content: content, Version: lookup.SHA}, nil
}

func (g *githubStore) WriteIfMatch(ctx context.Context, content []byte, version, message string) (*Commit, error) {
	body, err := json.Marshal(updateRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     version,
		Branch:  g.branch,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.contentURL(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	g.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github publish failed: %w", err)
	}
	defer resp.Body.Close()

	// GitHub reports a stale sha as 409; 422 covers the same condition on
	// some repos.
	if resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, fmt.Errorf("%w: %s", ErrVersionMismatch, apiErrorMessage(resp))
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("github publish failed: %s", apiErrorMessage(resp))
	}

	var result updateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("github publish failed: %w", err)
	}

	return &Commit{URL: result.Commit.HTMLURL, SHA: result.Commit.SHA}, nil
}

func (g *githubStore) contentURL() string {
	segments := strings.Split(g.path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}

	return fmt.Sprintf(
		"https://api.github.com/repos/%s/%s/contents/%s",
		url.PathEscape(g.owner),
		url.PathEscape(g.repo),
		strings.Join(segments, "/"),
	)
}

func (g *githubStore) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
}

// apiErrorMessage extracts the "message" field GitHub puts in error bodies,
// falling back to the HTTP status line.
func apiErrorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
			return payload.Message
		}
	}
	return resp.Status
}
