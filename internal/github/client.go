// Package github talks to the GitHub REST API to create the remote
// repository for a scaffolded project.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tacogips/mkapp/internal/debug"
	mkerrors "github.com/tacogips/mkapp/internal/errors"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// Client creates repositories through the GitHub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new GitHub client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateRepoRequest describes the repository to create.
type CreateRepoRequest struct {
	Owner string
	Name  string
	// IsOrg selects the organization endpoint. Otherwise the repository is
	// created for the authenticated user and Owner is informational.
	IsOrg       bool
	Private     bool
	Description string
}

// Repository is the created repository.
type Repository struct {
	FullName   string
	HTMLURL    string
	CloneURL   string
	SSHURL     string
	OwnerLogin string
}

type createRepoBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
	AutoInit    bool   `json:"auto_init"`
}

type repoResponse struct {
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
	CloneURL string `json:"clone_url"`
	SSHURL   string `json:"ssh_url"`
	Owner    struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type apiError struct {
	Message string `json:"message"`
	Errors  []struct {
		Message string `json:"message"`
		Field   string `json:"field"`
		Code    string `json:"code"`
	} `json:"errors"`
}

func (e apiError) String() string {
	parts := []string{}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	for _, d := range e.Errors {
		switch {
		case d.Message != "":
			parts = append(parts, d.Message)
		case d.Field != "":
			parts = append(parts, fmt.Sprintf("%s %s", d.Field, d.Code))
		}
	}
	return strings.Join(parts, "; ")
}

// CreateRepository creates an empty repository (no auto-init commit).
func (c *Client) CreateRepository(ctx context.Context, token string, in CreateRepoRequest) (*Repository, error) {
	endpoint := c.baseURL + "/user/repos"
	if in.IsOrg {
		endpoint = fmt.Sprintf("%s/orgs/%s/repos", c.baseURL, url.PathEscape(in.Owner))
	}

	jsonBody, err := json.Marshal(createRepoBody{
		Name:        in.Name,
		Description: in.Description,
		Private:     in.Private,
		AutoInit:    false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	debug.Debug("[github] POST %s name=%s private=%t", endpoint, in.Name, in.Private)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, mkerrors.NewExternalToolError("GitHub API request failed", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		var apiErr apiError
		detail := strings.TrimSpace(string(respBody))
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.String() != "" {
			detail = apiErr.String()
		}
		msg := fmt.Sprintf("GitHub API error (status %d) creating %s/%s: %s", resp.StatusCode, in.Owner, in.Name, detail)
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, mkerrors.NewAuthenticationError(msg, nil)
		}
		return nil, mkerrors.NewExternalToolError(msg, nil)
	}

	var result repoResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, mkerrors.NewExternalToolError("failed to parse GitHub API response", err)
	}
	if result.CloneURL == "" || result.HTMLURL == "" {
		return nil, mkerrors.NewExternalToolError("GitHub API response is missing repository URLs", nil)
	}

	return &Repository{
		FullName:   result.FullName,
		HTMLURL:    result.HTMLURL,
		CloneURL:   result.CloneURL,
		SSHURL:     result.SSHURL,
		OwnerLogin: result.Owner.Login,
	}, nil
}
