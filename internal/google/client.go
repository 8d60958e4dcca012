package google

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/caselink/caselink-backend/internal/config"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

// Failure kinds for the four remote calls. Callers branch on these with
// errors.Is; the wrapped error carries transport/status detail.
var (
	ErrTokenExchange = errors.New("google token exchange failed")
	ErrIdentityFetch = errors.New("google identity fetch failed")
	ErrRemoteFetch   = errors.New("google contacts fetch failed")
	ErrRemoteWrite   = errors.New("google contact create failed")
)

const defaultPeopleURL = "https://people.googleapis.com/v1"

// Identity is the verified profile returned by the People API for the
// user who authorized us. Consumed immediately to resolve a local user,
// never persisted.
type Identity struct {
	DisplayName string
	Email       string
}

// Client talks to Google's OAuth token endpoint and the People API.
type Client struct {
	oauth      *oauth2.Config
	httpClient *http.Client
	peopleURL  string
}

// ClientOption overrides a Client default; tests use these to point the
// client at fake endpoints.
type ClientOption func(*Client)

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = h }
}

func WithEndpoints(tokenURL, peopleURL string) ClientOption {
	return func(c *Client) {
		c.oauth.Endpoint = oauth2.Endpoint{TokenURL: tokenURL}
		c.peopleURL = peopleURL
	}
}

func NewClient(cfg *config.Config, opts ...ClientOption) *Client {
	c := &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.RedirectURI(),
			Endpoint:     googleoauth.Endpoint,
		},
		httpClient: &http.Client{Timeout: cfg.GoogleTimeout},
		peopleURL:  defaultPeopleURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExchangeCode trades an authorization code for a bearer access token
// using the authorization_code grant.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	return token.AccessToken, nil
}

// FetchIdentity resolves the bearer token to the authorizing user's
// display name and primary email.
func (c *Client) FetchIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	var person Person
	if err := c.get(ctx, accessToken, "/people/me", &person); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityFetch, err)
	}

	identity := &Identity{}
	if len(person.Names) > 0 {
		identity.DisplayName = person.Names[0].DisplayName
	}
	if len(person.EmailAddresses) > 0 {
		identity.Email = person.EmailAddresses[0].Value
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("%w: profile has no email address", ErrIdentityFetch)
	}
	return identity, nil
}

// ListConnections fetches the user's contact directory. The returned
// order is whatever Google sent; it is not stable across calls.
func (c *Client) ListConnections(ctx context.Context, accessToken string) ([]Person, error) {
	var resp connectionsResponse
	if err := c.get(ctx, accessToken, "/people/me/connections", &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteFetch, err)
	}
	return resp.Connections, nil
}

// CreateContact writes a contact to the user's Google directory and
// returns the resourceName Google assigned.
func (c *Client) CreateContact(ctx context.Context, accessToken string, person *Person) (string, error) {
	var created Person
	if err := c.post(ctx, accessToken, "/people:createContact", person, &created); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteWrite, err)
	}
	if created.ResourceName == "" {
		return "", fmt.Errorf("%w: response missing resourceName", ErrRemoteWrite)
	}
	return created.ResourceName, nil
}

func (c *Client) get(ctx context.Context, accessToken, path string, out any) error {
	u := c.peopleURL + path + "?personFields=" + url.QueryEscape("names,emailAddresses")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, accessToken, out)
}

func (c *Client) post(ctx context.Context, accessToken, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.peopleURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, accessToken, out)
}

func (c *Client) do(req *http.Request, accessToken string, out any) error {
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("people API returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
