// Package runcontext describes the workflow run an action executes in, from
// the GITHUB_* variables and the webhook event payload, and builds API
// clients for it.
package runcontext

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/go-github/v62/github"

	"actioncore/pkg/env"
)

const (
	DefaultAPIURL     = "https://api.github.com"
	DefaultServerURL  = "https://github.com"
	DefaultGraphQLURL = "https://api.github.com/graphql"
)

// ErrNoRepository means neither GITHUB_REPOSITORY nor the payload names a
// repository.
var ErrNoRepository = errors.New("repository is unknown")

// Repo identifies a repository.
type Repo struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Repo
}

// Context is the workflow run context.
type Context struct {
	EventName  string `json:"eventName"`
	SHA        string `json:"sha"`
	Ref        string `json:"ref"`
	Workflow   string `json:"workflow"`
	Action     string `json:"action"`
	Actor      string `json:"actor"`
	Job        string `json:"job"`
	RunID      int64  `json:"runId"`
	RunNumber  int64  `json:"runNumber"`
	RunAttempt int64  `json:"runAttempt"`
	APIURL     string `json:"apiUrl"`
	ServerURL  string `json:"serverUrl"`
	GraphQLURL string `json:"graphqlUrl"`
	Repository string `json:"repository,omitempty"`
	EventPath  string `json:"eventPath,omitempty"`

	// Payload is the decoded event payload, empty when there is none.
	Payload map[string]any `json:"payload"`
	raw     json.RawMessage
}

// FromEnv reads the run context. A missing event file leaves the payload
// empty; an unreadable or malformed one is an error.
func FromEnv(r env.Reader) (*Context, error) {
	c := &Context{
		EventName:  env.Get(r, "GITHUB_EVENT_NAME"),
		SHA:        env.Get(r, "GITHUB_SHA"),
		Ref:        env.Get(r, "GITHUB_REF"),
		Workflow:   env.Get(r, "GITHUB_WORKFLOW"),
		Action:     env.Get(r, "GITHUB_ACTION"),
		Actor:      env.Get(r, "GITHUB_ACTOR"),
		Job:        env.Get(r, "GITHUB_JOB"),
		APIURL:     getOr(r, "GITHUB_API_URL", DefaultAPIURL),
		ServerURL:  getOr(r, "GITHUB_SERVER_URL", DefaultServerURL),
		GraphQLURL: getOr(r, "GITHUB_GRAPHQL_URL", DefaultGraphQLURL),
		Repository: env.Get(r, "GITHUB_REPOSITORY"),
		EventPath:  env.Get(r, "GITHUB_EVENT_PATH"),
		Payload:    map[string]any{},
	}

	var err error
	if c.RunID, err = getInt(r, "GITHUB_RUN_ID"); err != nil {
		return nil, err
	}
	if c.RunNumber, err = getInt(r, "GITHUB_RUN_NUMBER"); err != nil {
		return nil, err
	}
	if c.RunAttempt, err = getInt(r, "GITHUB_RUN_ATTEMPT"); err != nil {
		return nil, err
	}

	if c.EventPath != "" {
		if err := c.loadPayload(c.EventPath); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Context) loadPayload(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read event payload: %w", err)
	}
	if err := json.Unmarshal(data, &c.Payload); err != nil {
		return fmt.Errorf("failed to decode event payload %s: %w", path, err)
	}
	c.raw = data
	return nil
}

// Repo returns the repository of the run, from GITHUB_REPOSITORY or the
// payload.
func (c *Context) Repo() (Repo, error) {
	if owner, repo, ok := strings.Cut(c.Repository, "/"); ok && owner != "" && repo != "" {
		return Repo{Owner: owner, Repo: repo}, nil
	}
	repository, _ := c.Payload["repository"].(map[string]any)
	owner, _ := repository["owner"].(map[string]any)
	login, _ := owner["login"].(string)
	name, _ := repository["name"].(string)
	if login == "" || name == "" {
		return Repo{}, ErrNoRepository
	}
	return Repo{Owner: login, Repo: name}, nil
}

// IssueNumber returns the issue or pull request number of the event, or 0.
func (c *Context) IssueNumber() int {
	for _, key := range []string{"issue", "pull_request"} {
		if obj, ok := c.Payload[key].(map[string]any); ok {
			if n, ok := obj["number"].(float64); ok {
				return int(n)
			}
		}
	}
	if n, ok := c.Payload["number"].(float64); ok {
		return int(n)
	}
	return 0
}

// Event decodes the payload into the go-github type for the event, such as
// *github.PushEvent. Without a payload, or for events go-github does not
// know, it returns the generic Payload map, which is empty when there is no
// payload.
func (c *Context) Event() (any, error) {
	if len(c.raw) == 0 || github.EventForType(c.EventName) == nil {
		return c.Payload, nil
	}
	event, err := github.ParseWebHook(c.EventName, c.raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s event: %w", c.EventName, err)
	}
	return event, nil
}

func getOr(r env.Reader, key, fallback string) string {
	if v := env.Get(r, key); v != "" {
		return v
	}
	return fallback
}

func getInt(r env.Reader, key string) (int64, error) {
	v := env.Get(r, key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &env.ParseError{Name: key, Value: v, Type: "integer", Err: err}
	}
	return n, nil
}
