package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tonypeanut/fullstack-notes-full/internal/domain"
	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
	"github.com/tonypeanut/fullstack-notes-full/internal/utils"
)

// Client talks to the remote notes API. It owns no state beyond the base
// URL and the credential source; every call is an independent round trip.
type Client struct {
	baseURL string
	http    *http.Client
	token   func() string // credential source, usually session.Store.Token
	logger  logger.Logger
}

// New builds a client for the API at baseURL. token is called per request
// to fetch the current bearer credential; it returns "" when no session is
// live, which fails authenticated calls with ErrNoSession before any I/O.
func New(baseURL string, timeout time.Duration, token func() string, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		token:   token,
		logger:  log,
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type noteBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type categoryBody struct {
	CategoryName string `json:"category_name"`
}

// Login exchanges credentials for a bearer token. Bad credentials come
// back as an *Error with the server's message.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", credentials{username, password}, &out, false)
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return out.Token, nil
}

// Register creates an account. The server assigns the id; the caller only
// needs success or failure.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/", credentials{username, password}, nil, false)
}

func (c *Client) ActiveNotes(ctx context.Context) ([]domain.Note, error) {
	var out []domain.Note
	err := c.do(ctx, http.MethodGet, "/notes", nil, &out, true)
	return out, err
}

func (c *Client) ArchivedNotes(ctx context.Context) ([]domain.Note, error) {
	var out []domain.Note
	err := c.do(ctx, http.MethodGet, "/notes/archived", nil, &out, true)
	return out, err
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := c.do(ctx, http.MethodGet, "/notes/categories", nil, &out, true)
	return out, err
}

// NotesByCategory returns a mixed active/archived set; the caller partitions.
func (c *Client) NotesByCategory(ctx context.Context, name string) ([]domain.Note, error) {
	var out []domain.Note
	err := c.do(ctx, http.MethodGet, "/notes/category/"+url.PathEscape(name), nil, &out, true)
	return out, err
}

func (c *Client) CreateNote(ctx context.Context, title, content string) (*domain.Note, error) {
	var out domain.Note
	err := c.do(ctx, http.MethodPost, "/notes", noteBody{title, content}, &out, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateNote(ctx context.Context, id int, title, content string) (*domain.Note, error) {
	var out domain.Note
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/notes/%d", id), noteBody{title, content}, &out, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ArchiveNote(ctx context.Context, id int) (*domain.Note, error) {
	var out domain.Note
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/notes/%d/archive", id), nil, &out, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UnarchiveNote(ctx context.Context, id int) (*domain.Note, error) {
	var out domain.Note
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/notes/%d/unarchive", id), nil, &out, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNote(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/notes/%d", id), nil, nil, true)
}

func (c *Client) AttachCategory(ctx context.Context, id int, name string) (*domain.Note, error) {
	var out domain.Note
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/notes/%d/categories", id), categoryBody{name}, &out, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DetachCategory(ctx context.Context, id int, name string) (*domain.Note, error) {
	var out domain.Note
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/notes/%d/categories", id), categoryBody{name}, &out, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// do runs one request/response round trip. Non-2xx responses become an
// *Error carrying the server's {error} message when one is present.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		tok := c.token()
		if tok == "" {
			return ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer utils.Close(resp.Body)

	c.logger.Debug("api_request",
		logger.String("method", method),
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
		}
	}
	return nil
}
