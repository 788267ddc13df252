// Package jira imports issue keys from a Jira Cloud search.
package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/sprintpoker/internal/core/logging"
	"github.com/colonyops/sprintpoker/internal/core/tracker"
)

const (
	searchPath   = "/rest/api/3/search"
	maxBodyBytes = 4 << 20

	noIssuesMessage = "No issues found for the given JQL query, or you may lack permissions to view them."
	transportHint   = " This commonly indicates a network issue, an incorrect Jira instance URL (make sure it includes http:// or https://), or a proxy or cross-origin policy blocking the request."
)

// DefaultTimeout bounds a single search request.
const DefaultTimeout = 15 * time.Second

// ErrNoIssues is wrapped by the error returned when a search matches nothing.
var ErrNoIssues = errors.New("no issues found")

// Credentials authenticate one search call. They are never stored by the
// client.
type Credentials struct {
	Email string
	Token string
}

// Kind classifies a failed search.
type Kind int

const (
	KindRequest Kind = iota
	KindTransport
	KindServer
	KindNoResults
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindNoResults:
		return "no-results"
	case KindDecode:
		return "decode"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is returned for every failed search. Message is suitable for display.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage implements tracker.UserMessager.
func (e *Error) UserMessage() string {
	return e.Message
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithMaxResults sets the maxResults query parameter. Zero leaves it to the
// server default.
func WithMaxResults(n int) Option {
	return func(c *Client) { c.maxResults = n }
}

// Client calls the Jira search endpoint.
type Client struct {
	http       *http.Client
	maxResults int
	log        zerolog.Logger
}

// New returns a Client.
func New(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: DefaultTimeout},
		log:  logging.Component("jira"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Issues []struct {
		Key string `json:"key"`
	} `json:"issues"`
}

type errorResponse struct {
	ErrorMessages []string `json:"errorMessages"`
	Message       string   `json:"message"`
}

// SearchKeys runs jql against the instance at baseURL and returns the issue
// keys in the order the server returned them.
func (c *Client) SearchKeys(ctx context.Context, baseURL string, creds Credentials, jql string) ([]string, error) {
	endpoint := strings.TrimSuffix(baseURL, "/") + searchPath

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("fields", "key")
	if c.maxResults > 0 {
		params.Set("maxResults", strconv.Itoa(c.maxResults))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &Error{Kind: KindRequest, Message: "Invalid Jira URL: " + err.Error(), Err: err}
	}
	req.SetBasicAuth(creds.Email, creds.Token)
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Ctx(ctx).Str("endpoint", endpoint).Msg("jira search")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Ctx(ctx).Err(err).Msg("jira search: transport failure")
		return nil, &Error{Kind: KindTransport, Message: err.Error() + transportHint, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Debug().Err(err).Msg("jira search: close response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Status: resp.StatusCode, Message: "Failed to read Jira response: " + err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serverMessage(resp.StatusCode, body)
		c.log.Debug().Ctx(ctx).Int("status", resp.StatusCode).Str("message", msg).Msg("jira search: server error")
		return nil, &Error{
			Kind:    KindServer,
			Status:  resp.StatusCode,
			Message: msg,
			Err:     fmt.Errorf("jira search: status %d", resp.StatusCode),
		}
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &Error{Kind: KindDecode, Status: resp.StatusCode, Message: "Failed to parse Jira response: " + err.Error(), Err: err}
	}

	if len(out.Issues) == 0 {
		return nil, &Error{Kind: KindNoResults, Status: resp.StatusCode, Message: noIssuesMessage, Err: ErrNoIssues}
	}

	keys := make([]string, 0, len(out.Issues))
	for _, issue := range out.Issues {
		keys = append(keys, issue.Key)
	}

	c.log.Debug().Ctx(ctx).Int("count", len(keys)).Msg("jira search: issues found")
	return keys, nil
}

// Fetch implements tracker.Source.
func (c *Client) Fetch(ctx context.Context, q tracker.Query) ([]string, error) {
	return c.SearchKeys(ctx, q.BaseURL, Credentials{Email: q.Email, Token: q.Token}, q.JQL)
}

// serverMessage prefers the joined errorMessages, then message, then the
// status line.
func serverMessage(status int, body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		if len(er.ErrorMessages) > 0 {
			return strings.Join(er.ErrorMessages, " ")
		}
		if er.Message != "" {
			return er.Message
		}
	}
	return fmt.Sprintf("Error: %d %s", status, http.StatusText(status))
}
