// Package tracker defines how task identifiers are pulled from an external
// issue tracker and the lifecycle of one import attempt.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hay-kot/criterio"
)

// ErrBusy is returned when an import is started while another is loading.
var ErrBusy = errors.New("an import is already in progress")

// Query is everything needed for one search against the tracker. The
// credentials are used for that single call only.
type Query struct {
	BaseURL string
	Email   string
	Token   string
	JQL     string
}

// Validate checks that every field is filled in and that BaseURL is an
// http(s) URL.
func (q Query) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("url", q.BaseURL, instanceURL),
		criterio.Run("email", q.Email, required),
		criterio.Run("token", q.Token, required),
		criterio.Run("jql", q.JQL, required),
	)
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (q Query) Trimmed() Query {
	return Query{
		BaseURL: strings.TrimSpace(q.BaseURL),
		Email:   strings.TrimSpace(q.Email),
		Token:   strings.TrimSpace(q.Token),
		JQL:     strings.TrimSpace(q.JQL),
	}
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

func instanceURL(s string) error {
	if err := required(s); err != nil {
		return err
	}
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must start with http:// or https://")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// Source fetches the identifiers of the issues matching a query, in the
// order the tracker returns them.
type Source interface {
	Fetch(ctx context.Context, q Query) ([]string, error)
}

// UserMessager is implemented by errors that carry a message meant for the
// person running the import.
type UserMessager interface {
	UserMessage() string
}

// Message returns the text to show for an import failure.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var um UserMessager
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	return "Failed to fetch tasks: " + err.Error()
}
