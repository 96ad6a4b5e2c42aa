// Package session tracks the current signed-in user on the client: token
// cache with transparent refresh, the sign-in/sign-up/reset flows, and the
// guard policies that decide what a screen may show.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jkuschner/Document-Storage-App/internal/client/api"
	"github.com/jkuschner/Document-Storage-App/internal/client/config"
	"github.com/jkuschner/Document-Storage-App/internal/logging"
)

// refreshSkew is how early before expiry the access token is refreshed.
const refreshSkew = 30 * time.Second

// Profile identifies the signed-in user.
type Profile struct {
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

// State is the outcome of resolving the current session.
type State struct {
	Authenticated bool
	Profile       *Profile
}

// Resolver owns the client-side session: the token pair, the cached profile
// and the HTTP clients. It satisfies api.TokenProvider for the authorized
// client it hands out via API().
type Resolver struct {
	bare   *api.Client
	authed *api.Client
	policy config.PasswordPolicy
	logger logging.Logger

	mu            sync.Mutex
	accessToken   string
	refreshToken  string
	accessExpires time.Time
	profile       *Profile
}

// NewResolver builds a Resolver for the backend at baseURL. httpClient may
// be nil.
func NewResolver(baseURL string, httpClient *http.Client, policy config.PasswordPolicy, logger logging.Logger) *Resolver {
	r := &Resolver{
		policy: policy,
		logger: logger.With("module", "session"),
	}
	r.bare = api.NewClient(baseURL, httpClient, nil)
	r.authed = api.NewClient(baseURL, httpClient, r)
	return r
}

// API returns the client that attaches the session's bearer token.
func (r *Resolver) API() *api.Client {
	return r.authed
}

// Policy returns the password guidance shown during signup and reset.
func (r *Resolver) Policy() config.PasswordPolicy {
	return r.policy
}

// Token returns the current access token, refreshing it first when it is
// about to expire. An empty string means there is no session.
func (r *Resolver) Token(ctx context.Context) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.accessToken == "" {
		return ""
	}
	if time.Until(r.accessExpires) > refreshSkew {
		return r.accessToken
	}
	if err := r.refreshLocked(ctx); err != nil {
		r.logger.Warn(ctx, "token refresh failed", "error", err)
		return ""
	}
	return r.accessToken
}

// UserID returns the signed-in user's id, or "" when signed out.
func (r *Resolver) UserID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.profile == nil {
		return ""
	}
	return r.profile.UserID
}

// Profile returns the cached profile, or nil when signed out.
func (r *Resolver) Profile() *Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profile
}

type tokenResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

type loginResponse struct {
	tokenResponse
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

// Resolve reports whether there is a live session. A missing session is a
// normal outcome, never an error; errors are reserved for transport
// failures.
func (r *Resolver) Resolve(ctx context.Context) (State, error) {
	if r.Token(ctx) == "" {
		return State{}, nil
	}

	var profile Profile
	err := r.authed.Get(ctx, "/auth/me", &profile)
	if err == nil {
		r.mu.Lock()
		r.profile = &profile
		r.mu.Unlock()
		return State{Authenticated: true, Profile: &profile}, nil
	}

	if apiErr, ok := err.(*api.Error); ok && apiErr.Kind == api.KindHTTP {
		// The session is gone server-side.
		r.clear()
		return State{}, nil
	}
	return State{}, err
}

// SignIn authenticates and stores the session.
func (r *Resolver) SignIn(ctx context.Context, email string, password []byte) (*Profile, error) {
	var resp loginResponse
	err := r.bare.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": string(password),
	}, &resp)
	if err != nil {
		return nil, err
	}

	profile := &Profile{UserID: resp.UserID, Email: resp.Email, EmailVerified: resp.EmailVerified}
	r.mu.Lock()
	r.accessToken = resp.IDToken
	r.refreshToken = resp.RefreshToken
	r.accessExpires = tokenExpiry(resp.IDToken)
	r.profile = profile
	r.mu.Unlock()
	return profile, nil
}

// SignUp creates an account and returns the new user id. The account stays
// unusable until ConfirmSignUp succeeds.
func (r *Resolver) SignUp(ctx context.Context, email string, password []byte) (string, error) {
	var resp struct {
		UserID string `json:"userId"`
	}
	err := r.bare.Post(ctx, "/auth/signup", map[string]string{
		"email":    email,
		"password": string(password),
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.UserID, nil
}

func (r *Resolver) ConfirmSignUp(ctx context.Context, email, code string) error {
	return r.bare.Post(ctx, "/auth/confirm", map[string]string{"email": email, "code": code}, nil)
}

func (r *Resolver) RequestPasswordReset(ctx context.Context, email string) error {
	return r.bare.Post(ctx, "/auth/reset", map[string]string{"email": email}, nil)
}

func (r *Resolver) ConfirmPasswordReset(ctx context.Context, email, code string, newPassword []byte) error {
	return r.bare.Post(ctx, "/auth/reset/confirm", map[string]string{
		"email":       email,
		"code":        code,
		"newPassword": string(newPassword),
	}, nil)
}

// SignOut revokes the session server-side and clears local state. The remote
// revoke is best-effort: a failure is logged and local state is cleared
// anyway.
func (r *Resolver) SignOut(ctx context.Context) {
	if r.Token(ctx) != "" {
		if err := r.authed.Post(ctx, "/auth/signout", nil, nil); err != nil {
			r.logger.Warn(ctx, "remote signout failed", "error", err)
		}
	}
	r.clear()
}

func (r *Resolver) clear() {
	r.mu.Lock()
	r.accessToken = ""
	r.refreshToken = ""
	r.accessExpires = time.Time{}
	r.profile = nil
	r.mu.Unlock()
}

// refreshLocked exchanges the refresh token for a new pair. Caller holds mu.
// The call goes through the bare client so no token lookup recurses here.
func (r *Resolver) refreshLocked(ctx context.Context) error {
	var resp tokenResponse
	err := r.bare.Post(ctx, "/auth/refresh", map[string]string{"refreshToken": r.refreshToken}, &resp)
	if err != nil {
		if apiErr, ok := err.(*api.Error); ok && apiErr.Kind == api.KindHTTP {
			r.accessToken = ""
			r.refreshToken = ""
			r.accessExpires = time.Time{}
			r.profile = nil
		}
		return err
	}
	r.accessToken = resp.IDToken
	r.refreshToken = resp.RefreshToken
	r.accessExpires = tokenExpiry(resp.IDToken)
	return nil
}

// tokenExpiry extracts the exp claim without verifying the signature; the
// client only needs it to schedule refreshes. Unparseable tokens get a short
// lifetime so the next call goes through the refresh path.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Now().Add(time.Minute)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Now().Add(time.Minute)
	}
	return exp.Time
}
