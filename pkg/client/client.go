// Package client talks to the clinic API: it holds the session, attaches the
// bearer token and exposes typed resources, lists and forms on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ResponseInterceptor inspects every authenticated response before it is
// decoded. Returning an error aborts the call with that error.
type ResponseInterceptor func(c *Client, resp *http.Response) error

// InvalidateOn401 treats a 401 as the server ending the session: the local
// session is cleared and the call fails with ErrSessionExpired.
func InvalidateOn401(c *Client, resp *http.Response) error {
	if resp.StatusCode != http.StatusUnauthorized {
		return nil
	}
	_ = c.Logout()
	return ErrSessionExpired
}

type Client struct {
	BaseURL string
	HTTP    *http.Client

	store        SessionStore
	interceptors []ResponseInterceptor

	mu      sync.RWMutex
	session Session
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.HTTP = h } }

func WithStore(s SessionStore) Option { return func(c *Client) { c.store = s } }

func WithInterceptors(in ...ResponseInterceptor) Option {
	return func(c *Client) { c.interceptors = append(c.interceptors, in...) }
}

// New never touches the session store; call Restore at startup.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		store:   &MemoryStore{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Restore loads a previously saved session. An expired one is discarded.
func (c *Client) Restore(_ context.Context) error {
	s, err := c.store.Load()
	if err != nil {
		return err
	}
	if !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt) {
		return c.Logout()
	}
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	return nil
}

func (c *Client) Session() (Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session, c.session.Valid()
}

// Login exchanges credentials for a token and persists the session.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var out struct {
		Token     string    `json:"token"`
		Username  string    `json:"username"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	body := map[string]string{"email": email, "contraseña": password}
	if err := c.send(ctx, http.MethodPost, "/auth/login", body, &out, false); err != nil {
		return Session{}, err
	}
	s := Session{Token: out.Token, Username: out.Username, ExpiresAt: out.ExpiresAt}
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	if err := c.store.Save(s); err != nil {
		return s, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

// Logout clears the session in memory and in the store.
func (c *Client) Logout() error {
	c.mu.Lock()
	c.session = Session{}
	c.mu.Unlock()
	return c.store.Clear()
}

// Register creates an account. Short passwords are rejected locally.
func (c *Client) Register(ctx context.Context, nombre, email, password string) (User, error) {
	if len([]rune(password)) < 8 {
		return User{}, ErrPasswordTooShort
	}
	var out struct {
		Usuario User `json:"usuario"`
	}
	body := map[string]string{"nombre": nombre, "email": email, "contraseña": password}
	err := c.send(ctx, http.MethodPost, "/usuarios", body, &out, false)
	return out.Usuario, err
}

// Do sends an authenticated request. Without a token it fails with
// ErrSessionExpired and sends nothing.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	s, ok := c.Session()
	if !ok {
		return nil, ErrSessionExpired
	}
	req = req.WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+s.Token)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	for _, in := range c.interceptors {
		if err := in(c, resp); err != nil {
			drain(resp)
			return nil, err
		}
	}
	return resp, nil
}

// send encodes in as JSON, performs the call and decodes a 2xx body into out.
func (c *Client) send(ctx context.Context, method, path string, in, out any, auth bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var resp *http.Response
	if auth {
		resp, err = c.Do(ctx, req)
	} else {
		resp, err = c.HTTP.Do(req)
	}
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var env struct {
		Error   string      `json:"error"`
		Message string      `json:"message"`
		Errores []Violation `json:"errores"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&env)
	msg := env.Error
	if msg == "" {
		msg = env.Message
	}
	return &APIError{Status: resp.StatusCode, Message: msg, Violations: env.Errores}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
