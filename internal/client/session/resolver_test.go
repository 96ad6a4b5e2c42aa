package session

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jkuschner/Document-Storage-App/internal/client/config"
	"github.com/jkuschner/Document-Storage-App/internal/logging"
	"github.com/jkuschner/Document-Storage-App/internal/server/auth"
)

const testSecret = "resolver-secret"

func mintToken(t *testing.T, userID string, validity time.Duration) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, userID+"@example.com", []byte(testSecret), validity)
	require.NoError(t, err)
	return token
}

func newResolverFor(t *testing.T, ts *httptest.Server) *Resolver {
	t.Helper()
	return NewResolver(ts.URL, ts.Client(), config.PasswordPolicy{MinLength: 8}, logging.NewJSONLogger(io.Discard))
}

func TestResolve_NoSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected, got %s %s", r.Method, r.URL.Path)
	}))
	defer ts.Close()

	r := newResolverFor(t, ts)

	state, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.False(t, state.Authenticated)
	require.Nil(t, state.Profile)
}

func TestSignInThenResolve(t *testing.T) {
	accessToken := mintToken(t, "u1", time.Hour)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"idToken":       accessToken,
				"refreshToken":  "r1",
				"userId":        "u1",
				"email":         "u1@example.com",
				"emailVerified": true,
			})
		case "/auth/me":
			require.Equal(t, "Bearer "+accessToken, r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"userId":        "u1",
				"email":         "u1@example.com",
				"emailVerified": true,
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	r := newResolverFor(t, ts)

	profile, err := r.SignIn(context.Background(), "u1@example.com", []byte("secret123"))
	require.NoError(t, err)
	require.Equal(t, "u1", profile.UserID)
	require.Equal(t, "u1", r.UserID())

	state, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.True(t, state.Authenticated)
	require.Equal(t, "u1@example.com", state.Profile.Email)
}

func TestToken_RefreshesWhenExpiringSoon(t *testing.T) {
	oldToken := mintToken(t, "u1", 5*time.Second) // inside the refresh skew
	newToken := mintToken(t, "u1", time.Hour)

	var refreshCalls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"idToken": oldToken, "refreshToken": "r1", "userId": "u1",
			})
		case "/auth/refresh":
			refreshCalls.Add(1)
			var req map[string]string
			_ = json.NewDecoder(r.Body).Decode(&req)
			require.Equal(t, "r1", req["refreshToken"])
			_ = json.NewEncoder(w).Encode(map[string]any{
				"idToken": newToken, "refreshToken": "r2",
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	r := newResolverFor(t, ts)
	_, err := r.SignIn(context.Background(), "u1@example.com", []byte("secret123"))
	require.NoError(t, err)

	got := r.Token(context.Background())
	require.Equal(t, newToken, got)
	require.Equal(t, int32(1), refreshCalls.Load())

	// A fresh token does not refresh again.
	got = r.Token(context.Background())
	require.Equal(t, newToken, got)
	require.Equal(t, int32(1), refreshCalls.Load())
}

func TestToken_RefreshRejectedClearsSession(t *testing.T) {
	oldToken := mintToken(t, "u1", time.Second)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"idToken": oldToken, "refreshToken": "r1", "userId": "u1",
			})
		case "/auth/refresh":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"refresh token expired"}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	r := newResolverFor(t, ts)
	_, err := r.SignIn(context.Background(), "u1@example.com", []byte("secret123"))
	require.NoError(t, err)

	require.Equal(t, "", r.Token(context.Background()))
	require.Equal(t, "", r.UserID())
}

func TestResolve_ServerRejectsTokenClearsSession(t *testing.T) {
	accessToken := mintToken(t, "u1", time.Hour)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"idToken": accessToken, "refreshToken": "r1", "userId": "u1",
			})
		case "/auth/me":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	r := newResolverFor(t, ts)
	_, err := r.SignIn(context.Background(), "u1@example.com", []byte("secret123"))
	require.NoError(t, err)

	state, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.False(t, state.Authenticated)
	require.Equal(t, "", r.UserID())
}

func TestSignOut_BestEffort(t *testing.T) {
	accessToken := mintToken(t, "u1", time.Hour)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"idToken": accessToken, "refreshToken": "r1", "userId": "u1",
			})
		case "/auth/signout":
			// Remote revoke fails; local state must clear anyway.
			w.WriteHeader(http.StatusInternalServerError)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	r := newResolverFor(t, ts)
	_, err := r.SignIn(context.Background(), "u1@example.com", []byte("secret123"))
	require.NoError(t, err)

	r.SignOut(context.Background())
	require.Equal(t, "", r.Token(context.Background()))
	require.Nil(t, r.Profile())
}

func TestSignUpFlow(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/signup":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"userId": "u9", "message": "check email"})
		case "/auth/confirm":
			var req map[string]string
			_ = json.NewDecoder(r.Body).Decode(&req)
			require.Equal(t, "123456", req["code"])
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "confirmed"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	r := newResolverFor(t, ts)

	userID, err := r.SignUp(context.Background(), "new@example.com", []byte("secret123"))
	require.NoError(t, err)
	require.Equal(t, "u9", userID)

	require.NoError(t, r.ConfirmSignUp(context.Background(), "new@example.com", "123456"))
}
