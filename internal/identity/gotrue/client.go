// Package gotrue is a client for GoTrue-compatible hosted identity providers.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vinculopei/vinculo-server/internal/model"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 1 << 20
)

var _ model.IdentityProvider = (*Client)(nil)

// Config holds identity provider connection settings.
type Config struct {
	URL        string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the provider's public auth endpoints. Each Client keeps
// its own session; use Isolated to act on behalf of another user without
// touching this one.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	session    *sessionStore
}

// New creates a Client with empty session storage.
func New(cfg Config) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse identity provider url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("identity provider url must be absolute: %q", cfg.URL)
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		apiKey:     cfg.APIKey,
		httpClient: client,
		session:    &sessionStore{},
	}, nil
}

// Isolated returns a client sharing only the transport.
func (c *Client) Isolated() model.IdentityProvider {
	return c.isolated()
}

// WithSession returns an isolated client holding s.
func (c *Client) WithSession(s model.Session) model.IdentityProvider {
	iso := c.isolated()
	iso.session.set(s)
	return iso
}

func (c *Client) isolated() *Client {
	return &Client{
		baseURL:    c.baseURL,
		apiKey:     c.apiKey,
		httpClient: c.httpClient,
		session:    &sessionStore{},
	}
}

type signUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

// Depending on the provider's auto-confirm setting the response is either
// a bare user or a session carrying the user.
type signUpResponse struct {
	userPayload
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	User         *userPayload `json:"user"`
}

// SignUp creates an identity. A session returned by auto-confirming
// providers is kept on this client only.
func (c *Client) SignUp(ctx context.Context, params model.SignUpParams) (model.Identity, error) {
	var resp signUpResponse
	err := c.do(ctx, "signup", http.MethodPost, "/auth/v1/signup", nil, "", signUpRequest{
		Email:    params.Email,
		Password: params.Password,
		Data:     params.Metadata,
	}, &resp)
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) && pe.Identity != nil {
			return *pe.Identity, err
		}
		return model.Identity{}, err
	}

	user := resp.userPayload
	if resp.User != nil {
		user = *resp.User
	}
	identity, err := user.identity()
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to read signup response: %w", err)
	}

	if resp.AccessToken != "" {
		c.session.set(model.Session{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
			ExpiresAt:    expiry(resp.ExpiresAt, resp.ExpiresIn),
			Identity:     identity,
		})
	}

	return identity, nil
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	User         userPayload `json:"user"`
}

// SignInWithPassword authenticates and stores the resulting session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (model.Session, error) {
	var resp tokenResponse
	query := url.Values{"grant_type": {"password"}}
	err := c.do(ctx, "token", http.MethodPost, "/auth/v1/token", query, "", passwordGrantRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return model.Session{}, err
	}

	identity, err := resp.User.identity()
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to read token response: %w", err)
	}

	session := model.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    expiry(resp.ExpiresAt, resp.ExpiresIn),
		Identity:     identity,
	}
	c.session.set(session)

	return session, nil
}

// SignOut revokes the stored session at the provider and clears it locally.
// Signing out without a session is a no-op.
func (c *Client) SignOut(ctx context.Context) error {
	session, ok := c.session.get()
	if !ok {
		return nil
	}
	c.session.clear()

	err := c.do(ctx, "logout", http.MethodPost, "/auth/v1/logout", nil, session.AccessToken, nil, nil)
	var pe *ProviderError
	if errors.As(err, &pe) {
		switch pe.Status {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return nil
		}
	}
	return err
}

func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, bearer string, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gotrue %s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return parseProviderError(operation, resp.StatusCode, data)
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", operation, err)
		}
	}

	return nil
}

type userPayload struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
	ConfirmedAt      *time.Time `json:"confirmed_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (u userPayload) identity() (model.Identity, error) {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return model.Identity{}, fmt.Errorf("invalid identity id %q: %w", u.ID, err)
	}
	return model.Identity{
		ID:        id,
		Email:     u.Email,
		Confirmed: u.EmailConfirmedAt != nil || u.ConfirmedAt != nil,
		CreatedAt: u.CreatedAt,
	}, nil
}

func expiry(expiresAt, expiresIn int64) time.Time {
	if expiresAt > 0 {
		return time.Unix(expiresAt, 0)
	}
	if expiresIn > 0 {
		return time.Now().Add(time.Duration(expiresIn) * time.Second)
	}
	return time.Time{}
}

type sessionStore struct {
	mu      sync.Mutex
	current model.Session
}

func (s *sessionStore) get() (model.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current.Valid()
}

func (s *sessionStore) set(session model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = session
}

func (s *sessionStore) clear() {
	s.set(model.Session{})
}
