package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
)

func TestSearchRepositories_Success(t *testing.T) {
	var gotPath, gotQuery, gotSort, gotAccept, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotSort = r.URL.Query().Get("sort")
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total_count": 1,
			"items": [{
				"id": 42,
				"name": "nmap",
				"owner": {"login": "nmap", "avatar_url": "https://example.com/a.png"},
				"description": "network scanner",
				"language": "C",
				"topics": ["security"],
				"stargazers_count": 9000,
				"forks_count": 2000,
				"watchers_count": 9000,
				"open_issues_count": 12,
				"updated_at": "2026-08-26T00:00:00Z",
				"html_url": "https://github.com/nmap/nmap",
				"license": {"name": "GPL-2.0"},
				"size": 2048
			}]
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Token: "token123"})

	repos, err := client.SearchRepositories(context.Background(), "nmap stars:>=10", SortStars, 100)
	require.NoError(t, err)
	require.Len(t, repos, 1)

	assert.Equal(t, "/search/repositories", gotPath)
	assert.Equal(t, "nmap stars:>=10", gotQuery)
	assert.Equal(t, "stars", gotSort)
	assert.Equal(t, "application/vnd.github.v3+json", gotAccept)
	assert.Equal(t, "Bearer token123", gotAuth)

	repo := repos[0]
	assert.Equal(t, int64(42), repo.ID)
	assert.Equal(t, "nmap", repo.Name)
	assert.Equal(t, 9000, repo.Stars)
	assert.Equal(t, 2000, repo.Forks)
	require.NotNil(t, repo.License)
	assert.Equal(t, "GPL-2.0", repo.License.Name)
}

func TestSearchRepositories_NoTokenNoAuthHeader(t *testing.T) {
	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization") != ""
		_, _ = w.Write([]byte(`{"total_count": 0, "items": []}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	repos, err := client.SearchRepositories(context.Background(), "security", SortStars, 100)
	require.NoError(t, err)
	assert.Empty(t, repos)
	assert.False(t, sawAuth, "unauthenticated mode must not send an Authorization header")
}

func TestSearchRepositories_RateLimited(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusTooManyRequests} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(Config{BaseURL: server.URL})
		_, err := client.SearchRepositories(context.Background(), "security", SortStars, 100)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrRateLimited)

		code, ok := domain.CodeFrom(err)
		require.True(t, ok)
		assert.Equal(t, domain.CodeRateLimited, code)

		server.Close()
	}
}

func TestSearchRepositories_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.SearchRepositories(context.Background(), "security", SortStars, 100)
	require.Error(t, err)

	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeUnavailable, code)
}

func TestSearchRepositories_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items": `))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.SearchRepositories(context.Background(), "security", SortStars, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestSearchRepositories_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.SearchRepositories(context.Background(), "security", SortStars, 100)
	require.Error(t, err)

	var domainErr *domain.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnavailable, domainErr.Code)
}

func TestGetRepository(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/rapid7/metasploit-framework", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 7, "name": "metasploit-framework", "owner": {"login": "rapid7"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	repo, err := client.GetRepository(context.Background(), "rapid7", "metasploit-framework")
	require.NoError(t, err)
	assert.Equal(t, int64(7), repo.ID)
	assert.Equal(t, "rapid7", repo.Owner.Login)
}
