// Package authstate tracks the signed-in user for a storefront client. It
// bootstraps from a persisted token, exposes the login, registration and OTP
// flows of the auth API, and reports every outcome as a Result value rather
// than an error that could escape to a UI layer.
package authstate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
)

// User is the authenticated account as reported by the server.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

// State is a snapshot of the auth state. IsLoading is true only between
// construction and the completion of CheckAuth.
type State struct {
	User      *User
	IsLoading bool
}

func (s State) IsAuthenticated() bool {
	return s.User != nil
}

// Result is the outcome of an auth operation. DemoOTP carries the code the
// server returns inline when email delivery is unconfigured; surfacing it to
// the operator is an explicitly non-production shortcut.
type Result struct {
	Success bool
	Error   string
	DemoOTP string
}

const networkErrorMessage = "network error, please try again"

// Client is the auth state manager. One instance is shared per running
// client; operations may run concurrently and the last write wins.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	mu       sync.Mutex
	user     *User
	loading  bool
	onChange func(State)
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithOnChange registers a callback invoked after every state transition.
func WithOnChange(fn func(State)) Option {
	return func(c *Client) { c.onChange = fn }
}

// New builds a Client in the loading state. Call CheckAuth once to
// bootstrap from the persisted token.
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		tokens:  tokens,
		loading: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current snapshot.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{User: c.user, IsLoading: c.loading}
}

// CheckAuth bootstraps the session. With no persisted token it settles to
// anonymous without any network call; with one it validates the token
// against the whoami endpoint and discards it on rejection.
func (c *Client) CheckAuth(ctx context.Context) {
	token, err := c.tokens.Get()
	if err != nil || token == "" {
		c.setState(nil, false)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		c.setState(nil, false)
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		_ = c.tokens.Clear()
		c.setState(nil, false)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = c.tokens.Clear()
		c.setState(nil, false)
		return
	}

	var body struct {
		User *User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.User == nil {
		_ = c.tokens.Clear()
		c.setState(nil, false)
		return
	}

	c.setState(body.User, false)
}

// SendLoginOTP asks the server to dispatch a login code for the email.
func (c *Client) SendLoginOTP(ctx context.Context, email string) Result {
	status, body, err := c.postJSON(ctx, "/api/auth/send-otp-email", map[string]any{"email": email})
	if err != nil {
		return Result{Error: networkErrorMessage}
	}
	if status < 200 || status > 299 {
		return Result{Error: messageOrDefault(body, "could not send OTP")}
	}
	return Result{Success: true, DemoOTP: body.DemoOTP}
}

// LoginWithPassword authenticates with credentials. On success the returned
// token is persisted and the user set; any failure leaves state untouched.
func (c *Client) LoginWithPassword(ctx context.Context, email, password string) Result {
	status, body, err := c.postJSON(ctx, "/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return Result{Error: networkErrorMessage}
	}
	if status < 200 || status > 299 || body.Token == "" {
		return Result{Error: messageOrDefault(body, "invalid email or password")}
	}

	_ = c.tokens.Set(body.Token)
	c.setState(body.User, false)
	return Result{Success: true}
}

// Register creates an account. The server may answer with an empty or
// non-JSON body; that still counts as success when the status is 2xx.
func (c *Client) Register(ctx context.Context, name, email, phone, password string) Result {
	status, body, err := c.postJSON(ctx, "/api/auth/register", map[string]any{
		"name":     name,
		"email":    email,
		"phone":    phone,
		"password": password,
	})
	if err != nil {
		return Result{Error: networkErrorMessage}
	}
	if status < 200 || status > 299 {
		return Result{Error: messageOrDefault(body, "registration failed")}
	}
	return Result{Success: true, DemoOTP: body.DemoOTP}
}

// Login exchanges an OTP for a session. isRegistration distinguishes
// registration verification from login verification.
func (c *Client) Login(ctx context.Context, email, otp string, isRegistration bool) Result {
	status, body, err := c.postJSON(ctx, "/api/auth/verify-otp", map[string]any{
		"email":          email,
		"otp":            otp,
		"isRegistration": isRegistration,
	})
	if err != nil {
		return Result{Error: networkErrorMessage}
	}
	if status < 200 || status > 299 || body.Token == "" {
		return Result{Error: messageOrDefault(body, "invalid or expired code")}
	}

	_ = c.tokens.Set(body.Token)
	c.setState(body.User, false)
	return Result{Success: true}
}

// Logout discards the persisted token and clears the user synchronously.
// No network call is made.
func (c *Client) Logout() {
	_ = c.tokens.Clear()
	c.setState(nil, false)
}

// responseBody is the union of fields the auth endpoints may return.
type responseBody struct {
	Token   string `json:"token"`
	User    *User  `json:"user"`
	DemoOTP string `json:"demoOTP"`
	Message string `json:"message"`
}

func (c *Client) postJSON(ctx context.Context, path string, payload map[string]any) (int, responseBody, error) {
	var body responseBody

	data, err := json.Marshal(payload)
	if err != nil {
		return 0, body, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, body, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, body, err
	}
	defer resp.Body.Close()

	// Tolerate empty and non-JSON bodies; the status code already carries
	// the outcome.
	_ = json.NewDecoder(resp.Body).Decode(&body)

	return resp.StatusCode, body, nil
}

func messageOrDefault(body responseBody, fallback string) string {
	if body.Message != "" {
		return body.Message
	}
	return fallback
}

func (c *Client) setState(user *User, loading bool) {
	c.mu.Lock()
	c.user = user
	c.loading = loading
	snapshot := State{User: c.user, IsLoading: c.loading}
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
}
