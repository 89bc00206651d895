// Package auth resolves the local user identity from a cached session file
// so the agent can queue and sync data without a live authentication round
// trip. The access token is parsed without signature verification; the
// hosted platform verifies it on every request.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/models"
)

// ErrNoSession is returned when no cached session is available.
var ErrNoSession = errors.New("no cached session")

// Facade exposes the cached identity to the rest of the agent.
type Facade struct {
	log  *logger.Logger
	path string

	mu      sync.RWMutex
	session *models.Session
}

// NewFacade creates a facade backed by the session file at path. The file is
// not read until [Facade.Load] is called.
func NewFacade(log *logger.Logger, path string) *Facade {
	return &Facade{log: log, path: path}
}

// Load reads and caches the session file. A missing file yields
// [ErrNoSession] so callers can treat first launch as signed-out.
func (f *Facade) Load() error {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoSession
		}
		return fmt.Errorf("error reading session file: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return fmt.Errorf("error parsing session file: %w", err)
	}

	f.mu.Lock()
	f.session = &session
	f.mu.Unlock()

	f.log.Debug().Str("func", "Load").Msg("session loaded from cache")
	return nil
}

// Save persists the session to the cache file and makes it current.
func (f *Facade) Save(session models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("error writing session file: %w", err)
	}

	f.mu.Lock()
	f.session = &session
	f.mu.Unlock()
	return nil
}

// UserID returns the signed-in user's id. When the cached session carries no
// explicit id the token subject is used instead.
func (f *Facade) UserID() (string, error) {
	f.mu.RLock()
	session := f.session
	f.mu.RUnlock()

	if session == nil {
		return "", ErrNoSession
	}
	if session.UserID != "" {
		return session.UserID, nil
	}
	return subjectFromToken(session.AccessToken)
}

// PartnerID returns the linked partner's id, or empty when unlinked.
func (f *Facade) PartnerID() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.session == nil {
		return ""
	}
	return f.session.PartnerID
}

// Token returns the cached access token for outbound requests.
func (f *Facade) Token() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.session == nil {
		return ""
	}
	return f.session.AccessToken
}

// subjectFromToken extracts the subject claim without verifying the
// signature. Verification happens server-side; locally the token only names
// the user.
func subjectFromToken(token string) (string, error) {
	if token == "" {
		return "", ErrNoSession
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("error parsing access token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("access token has no subject: %w", err)
	}
	return sub, nil
}
