package runcontext

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// NewClient creates an API client for apiURL, authenticated with token when
// it is not empty. An empty apiURL means DefaultAPIURL.
func NewClient(ctx context.Context, token, apiURL string) (*github.Client, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	}
	client := github.NewClient(httpClient)

	if apiURL == "" || strings.TrimSuffix(apiURL, "/") == DefaultAPIURL {
		return client, nil
	}
	baseURL, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
	}
	client.BaseURL = baseURL
	client.UploadURL = baseURL
	return client, nil
}

// Client creates an API client for the run's API endpoint.
func (c *Context) Client(ctx context.Context, token string) (*github.Client, error) {
	return NewClient(ctx, token, c.APIURL)
}

// PullRequest fetches the pull request the event refers to.
func (c *Context) PullRequest(ctx context.Context, client *github.Client) (*github.PullRequest, error) {
	repo, err := c.Repo()
	if err != nil {
		return nil, err
	}
	number := c.IssueNumber()
	if number == 0 {
		return nil, fmt.Errorf("%s event does not refer to a pull request", c.EventName)
	}
	pr, _, err := client.PullRequests.Get(ctx, repo.Owner, repo.Repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request %s#%d: %w", repo, number, err)
	}
	return pr, nil
}
