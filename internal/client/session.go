package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Session is the credential state a client carries between runs: the
// bearer token and when it stops being worth presenting.
type Session struct {
	Token     string    `toml:"token"`
	ExpiresAt time.Time `toml:"expires_at"`
}

func (s *Session) Expired() bool {
	return !time.Now().Before(s.ExpiresAt)
}

// SessionStore persists a Session as a TOML file. There is no global
// token: whoever issues requests owns an explicit store.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// DefaultSessionPath is the per-user session file location.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "baraka", "session.toml"), nil
}

// Load reads the persisted session. A missing file or an expired
// session yields nil, not an error.
func (st *SessionStore) Load() (*Session, error) {
	var session Session
	_, err := toml.DecodeFile(st.path, &session)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if session.Token == "" || session.Expired() {
		return nil, nil
	}

	return &session, nil
}

func (st *SessionStore) Save(session *Session) error {
	err := os.MkdirAll(filepath.Dir(st.path), 0700)
	if err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	f, err := os.OpenFile(st.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open session file: %w", err)
	}
	defer f.Close()

	err = toml.NewEncoder(f).Encode(session)
	if err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear removes the persisted session. Clearing a session that does
// not exist is not an error.
func (st *SessionStore) Clear() error {
	err := os.Remove(st.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
