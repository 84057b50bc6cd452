package authstate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAuth_NoTokenMakesNoNetworkCall(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	c := New(server.URL, NewMemoryTokenStore())
	assert.True(t, c.State().IsLoading)

	c.CheckAuth(context.Background())

	state := c.State()
	assert.False(t, state.IsLoading)
	assert.False(t, state.IsAuthenticated())
	assert.Zero(t, calls.Load())
}

func TestCheckAuth_ValidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"id": "u1", "email": "ada@example.com", "isAdmin": false},
		})
	}))
	defer server.Close()

	tokens := NewMemoryTokenStore()
	require.NoError(t, tokens.Set("tok123"))

	c := New(server.URL, tokens)
	c.CheckAuth(context.Background())

	state := c.State()
	assert.False(t, state.IsLoading)
	require.True(t, state.IsAuthenticated())
	assert.Equal(t, "ada@example.com", state.User.Email)
}

func TestCheckAuth_RejectedTokenIsDiscarded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := NewMemoryTokenStore()
	require.NoError(t, tokens.Set("stale"))

	c := New(server.URL, tokens)
	c.CheckAuth(context.Background())

	assert.False(t, c.State().IsAuthenticated())
	stored, err := tokens.Get()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCheckAuth_NetworkErrorDiscardsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	tokens := NewMemoryTokenStore()
	require.NoError(t, tokens.Set("tok"))

	c := New(server.URL, tokens)
	c.CheckAuth(context.Background())

	assert.False(t, c.State().IsAuthenticated())
	stored, _ := tokens.Get()
	assert.Empty(t, stored)
}

func TestLoginWithPassword_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok456",
			"user":  map[string]any{"id": "u1", "email": "ada@example.com"},
		})
	}))
	defer server.Close()

	tokens := NewMemoryTokenStore()
	c := New(server.URL, tokens)

	result := c.LoginWithPassword(context.Background(), "ada@example.com", "hunter22")
	require.True(t, result.Success)

	stored, _ := tokens.Get()
	assert.Equal(t, "tok456", stored)
	assert.True(t, c.State().IsAuthenticated())
}

func TestLoginWithPassword_FailureLeavesStateUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"message": "invalid email or password"})
	}))
	defer server.Close()

	tokens := NewMemoryTokenStore()
	c := New(server.URL, tokens)

	result := c.LoginWithPassword(context.Background(), "ada@example.com", "wrong")
	assert.False(t, result.Success)
	assert.Equal(t, "invalid email or password", result.Error)

	stored, _ := tokens.Get()
	assert.Empty(t, stored)
	assert.False(t, c.State().IsAuthenticated())
}

func TestLoginWithPassword_MissingTokenIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"id": "u1"}})
	}))
	defer server.Close()

	c := New(server.URL, NewMemoryTokenStore())
	result := c.LoginWithPassword(context.Background(), "ada@example.com", "hunter22")
	assert.False(t, result.Success)
}

func TestSendLoginOTP_SurfacesDemoCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"message": "ok", "demoOTP": "123456"})
	}))
	defer server.Close()

	c := New(server.URL, NewMemoryTokenStore())
	result := c.SendLoginOTP(context.Background(), "ada@example.com")
	require.True(t, result.Success)
	assert.Equal(t, "123456", result.DemoOTP)
}

func TestRegister_ToleratesEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL, NewMemoryTokenStore())
	result := c.Register(context.Background(), "Ada", "ada@example.com", "555-0101", "hunter22")
	assert.True(t, result.Success)
}

func TestRegister_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := New(server.URL, NewMemoryTokenStore())
	result := c.Register(context.Background(), "Ada", "ada@example.com", "", "hunter22")
	assert.False(t, result.Success)
	assert.Equal(t, networkErrorMessage, result.Error)
}

func TestLogin_OTPSuccessPersistsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/verify-otp", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["isRegistration"])

		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok789",
			"user":  map[string]any{"id": "u1", "email": "ada@example.com"},
		})
	}))
	defer server.Close()

	tokens := NewMemoryTokenStore()
	c := New(server.URL, tokens)

	result := c.Login(context.Background(), "ada@example.com", "123456", true)
	require.True(t, result.Success)

	stored, _ := tokens.Get()
	assert.Equal(t, "tok789", stored)
}

func TestLogout_ClearsStateWithoutNetworkCall(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok",
			"user":  map[string]any{"id": "u1"},
		})
	}))
	defer server.Close()

	tokens := NewMemoryTokenStore()
	c := New(server.URL, tokens)
	require.True(t, c.LoginWithPassword(context.Background(), "a@b.c", "pw").Success)
	before := calls.Load()

	c.Logout()

	assert.Equal(t, before, calls.Load())
	assert.False(t, c.State().IsAuthenticated())
	stored, _ := tokens.Get()
	assert.Empty(t, stored)
}

func TestOnChange_NotifiedOnTransitions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok",
			"user":  map[string]any{"id": "u1", "email": "ada@example.com"},
		})
	}))
	defer server.Close()

	var states []State
	c := New(server.URL, NewMemoryTokenStore(), WithOnChange(func(s State) {
		states = append(states, s)
	}))

	c.CheckAuth(context.Background())
	c.LoginWithPassword(context.Background(), "ada@example.com", "hunter22")
	c.Logout()

	require.Len(t, states, 3)
	assert.False(t, states[0].IsAuthenticated())
	assert.True(t, states[1].IsAuthenticated())
	assert.False(t, states[2].IsAuthenticated())
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	s := NewFileTokenStore(path)

	stored, err := s.Get()
	require.NoError(t, err)
	assert.Empty(t, stored)

	require.NoError(t, s.Set("tok123"))
	stored, err = s.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok123", stored)

	require.NoError(t, s.Clear())
	stored, err = s.Get()
	require.NoError(t, err)
	assert.Empty(t, stored)

	// Clearing an already-empty store is fine.
	require.NoError(t, s.Clear())
}
