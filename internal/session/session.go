// Package session owns the console's stored credential: set at login,
// read on every authenticated request, cleared at logout or on a 401.
// Validity is decided locally from the token's embedded expiry claim when
// it carries one, so no server round trip is spent on checking it.
package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const sessionFile = "session.json"

// Session is the persisted login state. ExpiresAt is recorded at login
// for opaque tokens that carry no expiry claim of their own.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Valid reports whether the session can still authenticate requests at
// the given instant. A token-embedded expiry claim takes precedence over
// the recorded ExpiresAt.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	if exp, ok := TokenExpiry(s.Token); ok {
		return now.Before(exp)
	}
	if !s.ExpiresAt.IsZero() {
		return now.Before(s.ExpiresAt)
	}
	return true
}

// TokenExpiry extracts the exp claim from a JWT-shaped token. The second
// return is false for opaque tokens or tokens without the claim.
func TokenExpiry(token string) (time.Time, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}, false
	}

	var claims struct {
		Exp float64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return time.Time{}, false
	}

	return time.Unix(int64(claims.Exp), 0), true
}

// Store persists the session under the console's state directory.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a store rooted at the default config directory
// (~/.config/backupdesk, honoring XDG_CONFIG_HOME).
func NewStore() (*Store, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return NewStoreAt(dir), nil
}

// NewStoreAt creates a store rooted at an explicit directory.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Save writes the session after a successful login.
func (st *Store) Save(s Session) error {
	if err := os.MkdirAll(st.dir, 0700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(filepath.Join(st.dir, sessionFile), data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load returns the stored session, or nil when none exists.
func (st *Store) Load() (*Session, error) {
	data, err := os.ReadFile(filepath.Join(st.dir, sessionFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &s, nil
}

// Token returns the stored token if it is still valid, else "". This
// satisfies the gateway's TokenSource.
func (st *Store) Token() string {
	s, err := st.Load()
	if err != nil || !s.Valid(st.now()) {
		return ""
	}
	return s.Token
}

// Clear removes the stored session. Clearing an absent session is not an
// error.
func (st *Store) Clear() error {
	err := os.Remove(filepath.Join(st.dir, sessionFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return filepath.Join(xdgConfig, "backupdesk"), nil
}
