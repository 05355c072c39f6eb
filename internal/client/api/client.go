// Package api is the HTTP client for the gophnotes JSON API. It keeps the
// session token and unwraps the {status, message, ...payload} envelope.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(t string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = t
}

// HTTPClient exposes the underlying client, e.g. for presigned downloads.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

type envelope struct {
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	AuthToken string         `json:"authToken"`
	User      *models.User   `json:"user"`
	Note      *models.Note   `json:"note"`
	Notes     []*models.Note `json:"notes"`
	URL       string         `json:"url"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t := c.Token(); t != "" {
		req.Header.Set(common.AuthTokenHeaderName, t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || env.Status != "success" {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	env, err := c.do(ctx, http.MethodPost, "/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	c.SetToken(env.AuthToken)
	return nil
}

// Login authenticates and keeps the returned token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	env, err := c.do(ctx, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	c.SetToken(env.AuthToken)
	return nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// UpdateMe sends only the non-nil fields.
func (c *Client) UpdateMe(ctx context.Context, name, email *string) (*models.User, error) {
	body := map[string]string{}
	if name != nil {
		body["name"] = *name
	}
	if email != nil {
		body["email"] = *email
	}
	env, err := c.do(ctx, http.MethodPatch, "/user", body)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]*models.Note, error) {
	env, err := c.do(ctx, http.MethodGet, "/notes", nil)
	if err != nil {
		return nil, err
	}
	return env.Notes, nil
}

// AddNote creates a note; an empty tag lets the server pick the default.
func (c *Client) AddNote(ctx context.Context, title, description, tag string) (*models.Note, error) {
	body := map[string]string{"title": title, "description": description}
	if tag != "" {
		body["tag"] = tag
	}
	env, err := c.do(ctx, http.MethodPost, "/notes", body)
	if err != nil {
		return nil, err
	}
	return env.Note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, ch models.NoteChanges) (*models.Note, error) {
	env, err := c.do(ctx, http.MethodPatch, "/notes/"+url.PathEscape(id), ch)
	if err != nil {
		return nil, err
	}
	return env.Note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) (*models.Note, error) {
	env, err := c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return env.Note, nil
}

// ExportNotes asks the server to snapshot the notes and returns the
// presigned download URL.
func (c *Client) ExportNotes(ctx context.Context) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/notes/export", nil)
	if err != nil {
		return "", err
	}
	return env.URL, nil
}
