package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caselink/caselink-backend/internal/config"
	"github.com/caselink/caselink-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleTimeout:      5 * time.Second,
		APIURL:             "http://localhost:8080",
	}
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(testConfig(),
		WithHTTPClient(srv.Client()),
		WithEndpoints(srv.URL+"/token", srv.URL),
	)
}

func TestExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.FormValue("grant_type"))
		assert.Equal(t, "abc123", r.FormValue("code"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "tok1",
			"token_type":   "Bearer",
		})
	}))
	defer srv.Close()

	token, err := newTestClient(srv).ExchangeCode(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "tok1", token)
}

func TestExchangeCodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ExchangeCode(context.Background(), "bad-code")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenExchange)
}

func TestFetchIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/people/me", r.URL.Path)
		assert.Equal(t, "Bearer tok1", r.Header.Get("Authorization"))
		assert.Equal(t, "names,emailAddresses", r.URL.Query().Get("personFields"))

		json.NewEncoder(w).Encode(Person{
			Names:          []Name{{DisplayName: "Jane Doe"}},
			EmailAddresses: []EmailAddress{{Value: "jane@x.com"}},
		})
	}))
	defer srv.Close()

	identity, err := newTestClient(srv).FetchIdentity(context.Background(), "tok1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", identity.DisplayName)
	assert.Equal(t, "jane@x.com", identity.Email)
}

func TestFetchIdentityFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchIdentity(context.Background(), "tok1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIdentityFetch)
	assert.NotErrorIs(t, err, ErrTokenExchange)
}

func TestListConnections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/people/me/connections", r.URL.Path)
		json.NewEncoder(w).Encode(map[string][]Person{
			"connections": {
				{ResourceName: "people/c1", Names: []Name{{GivenName: "Ann"}}},
				{ResourceName: "people/c2"},
			},
		})
	}))
	defer srv.Close()

	persons, err := newTestClient(srv).ListConnections(context.Background(), "tok1")
	require.NoError(t, err)
	require.Len(t, persons, 2)
	assert.Equal(t, "people/c1", persons[0].ResourceName)
	assert.Equal(t, "people/c2", persons[1].ResourceName)
}

func TestListConnectionsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListConnections(context.Background(), "tok1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteFetch)
}

func TestCreateContact(t *testing.T) {
	var payload Person
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/people:createContact", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(Person{ResourceName: "people/c42"})
	}))
	defer srv.Close()

	contact := &models.Contact{FirstName: "Ann", EmailMain: "a@x.com"}
	resourceName, err := newTestClient(srv).CreateContact(context.Background(), "tok1", PersonFromContact(contact))
	require.NoError(t, err)
	assert.Equal(t, "people/c42", resourceName)

	// Fixed-slot arrays survive the wire even when the source fields are empty.
	assert.Len(t, payload.Addresses, 2)
	assert.Len(t, payload.PhoneNumbers, 4)
	assert.Len(t, payload.EmailAddresses, 2)
}

func TestCreateContactFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).CreateContact(context.Background(), "tok1", &Person{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteWrite)
}
