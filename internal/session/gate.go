package session

import (
	"context"
	"time"

	"simplemarket/internal/localstore"
	"simplemarket/internal/logger"

	"go.uber.org/zap"
)

// Gate guards the storefront pages. It owns two storage scopes: the
// persistent one survives restarts (remember-me), the ephemeral one lives
// for the process only.
type Gate struct {
	auth       Authenticator
	persistent localstore.Store
	ephemeral  localstore.Store
	secret     string
	now        func() time.Time
}

func NewGate(auth Authenticator, persistent, ephemeral localstore.Store, secret string) *Gate {
	return &Gate{
		auth:       auth,
		persistent: persistent,
		ephemeral:  ephemeral,
		secret:     secret,
		now:        time.Now,
	}
}

// Login authenticates and writes session state. rememberMe picks the
// storage scope for the session blob and toggles the remember-me marker.
func (g *Gate) Login(ctx context.Context, username, password string, rememberMe bool) (*Session, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	u, err := g.auth.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Role:        u.Role,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		CreatedAt:   g.now(),
	}

	token, err := signSession(s, g.secret)
	if err != nil {
		return nil, err
	}

	if rememberMe {
		if err := g.persistent.Set(localstore.KeySession, token); err != nil {
			return nil, err
		}
		_ = g.persistent.Set(localstore.KeyRememberMe, "true")
	} else {
		if err := g.ephemeral.Set(localstore.KeySession, token); err != nil {
			return nil, err
		}
		_ = g.persistent.Remove(localstore.KeyRememberMe)
	}

	// Role and username markers the pages key off, as in the original.
	_ = g.persistent.Set(localstore.KeyUserRole, string(s.Role))
	_ = g.persistent.Set(localstore.KeyUsername, s.Username)

	logger.L().Info("login succeeded",
		zap.String("username", s.Username),
		zap.String("role", string(s.Role)),
		zap.Bool("remember_me", rememberMe),
	)
	return s, nil
}

// CheckExistingSession restores a still-valid stored session. The check
// compares the current time against the session start plus the fixed
// window; it never refreshes the start. Corrupt or expired blobs read as
// no session.
func (g *Gate) CheckExistingSession() (*Session, bool) {
	token, ok := g.persistent.Get(localstore.KeySession)
	if !ok {
		token, ok = g.ephemeral.Get(localstore.KeySession)
	}
	if !ok || token == "" {
		return nil, false
	}

	s, err := parseSession(token, g.secret)
	if err != nil {
		logger.L().Warn("discarding unreadable session blob", zap.Error(err))
		return nil, false
	}

	if !s.ValidAt(g.now()) {
		return nil, false
	}

	_ = g.persistent.Set(localstore.KeyUserRole, string(s.Role))
	return s, true
}

// Logout clears all session keys from both scopes. Safe to call when no
// session exists.
func (g *Gate) Logout() {
	for _, store := range []localstore.Store{g.persistent, g.ephemeral} {
		_ = store.Remove(localstore.KeySession)
	}
	_ = g.persistent.Remove(localstore.KeyUserRole)
	_ = g.persistent.Remove(localstore.KeyUsername)
	_ = g.persistent.Remove(localstore.KeyRememberMe)
}

// RequireRole is the page-load check: the stored role marker must match.
func (g *Gate) RequireRole(role Role) bool {
	stored, ok := g.persistent.Get(localstore.KeyUserRole)
	return ok && stored == string(role)
}

// Token returns the raw session blob for use as a bearer token on
// admin API calls.
func (g *Gate) Token() (string, bool) {
	if token, ok := g.persistent.Get(localstore.KeySession); ok {
		return token, true
	}
	return g.ephemeral.Get(localstore.KeySession)
}
