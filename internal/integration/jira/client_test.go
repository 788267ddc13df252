package jira

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/sprintpoker/internal/core/tracker"
)

var testCreds = Credentials{Email: "me@example.com", Token: "secret"}

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchKeys_Request(t *testing.T) {
	var got *http.Request
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_, _ = w.Write([]byte(`{"issues":[{"key":"P-1"}]}`))
	})

	_, err := New(WithMaxResults(25)).SearchKeys(context.Background(), srv.URL+"/", testCreds, "project = P")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "/rest/api/3/search", got.URL.Path)
	assert.Equal(t, "project = P", got.URL.Query().Get("jql"))
	assert.Equal(t, "key", got.URL.Query().Get("fields"))
	assert.Equal(t, "25", got.URL.Query().Get("maxResults"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))

	user, pass, ok := got.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "me@example.com", user)
	assert.Equal(t, "secret", pass)
}

func TestSearchKeys_ReturnsKeysInOrder(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"issues":[{"key":"P-2"},{"key":"P-1"},{"key":"P-10"}]}`))
	})

	keys, err := New().SearchKeys(context.Background(), srv.URL, testCreds, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"P-2", "P-1", "P-10"}, keys)
}

func TestSearchKeys_NoIssues(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"issues":[]}`))
	})

	keys, err := New().SearchKeys(context.Background(), srv.URL, testCreds, "x")
	require.Error(t, err)
	assert.Nil(t, keys)
	assert.ErrorIs(t, err, ErrNoIssues)

	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, KindNoResults, jerr.Kind)
	assert.Equal(t, "No issues found for the given JQL query, or you may lack permissions to view them.", jerr.Message)
}

func TestSearchKeys_ServerErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "error messages joined",
			status: http.StatusBadRequest,
			body:   `{"errorMessages":["Field 'foo' does not exist.","Bad JQL."]}`,
			want:   "Field 'foo' does not exist. Bad JQL.",
		},
		{
			name:   "message field",
			status: http.StatusUnauthorized,
			body:   `{"message":"Client must be authenticated"}`,
			want:   "Client must be authenticated",
		},
		{
			name:   "unparseable body",
			status: http.StatusInternalServerError,
			body:   `<html>oops</html>`,
			want:   "Error: 500 Internal Server Error",
		},
		{
			name:   "empty error list",
			status: http.StatusForbidden,
			body:   `{"errorMessages":[]}`,
			want:   "Error: 403 Forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := New().SearchKeys(context.Background(), srv.URL, testCreds, "x")
			var jerr *Error
			require.ErrorAs(t, err, &jerr)
			assert.Equal(t, KindServer, jerr.Kind)
			assert.Equal(t, tt.status, jerr.Status)
			assert.Equal(t, tt.want, jerr.Error())
		})
	}
}

func TestSearchKeys_DecodeError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := New().SearchKeys(context.Background(), srv.URL, testCreds, "x")
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, KindDecode, jerr.Kind)
}

func TestSearchKeys_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := New().SearchKeys(context.Background(), base, testCreds, "x")
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, KindTransport, jerr.Kind)
	assert.Contains(t, jerr.Message, "network issue")
	require.Error(t, errors.Unwrap(err))
	assert.Contains(t, jerr.Message, errors.Unwrap(err).Error())
}

func TestSearchKeys_InvalidURL(t *testing.T) {
	_, err := New().SearchKeys(context.Background(), "://nope", testCreds, "x")
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, KindRequest, jerr.Kind)
}

func TestFetch_ImplementsSource(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"issues":[{"key":"P-1"},{"key":"P-2"}]}`))
	})

	var src tracker.Source = New()
	keys, err := src.Fetch(context.Background(), tracker.Query{BaseURL: srv.URL, Email: "a", Token: "b", JQL: "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"P-1", "P-2"}, keys)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "no-results", KindNoResults.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
