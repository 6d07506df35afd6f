package api

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// TokenSource supplies the bearer token for authenticated requests. An
// empty token with a nil error means "unauthenticated", which is fine
// for public endpoints.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a fixed bearer token.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() (string, error) { return string(t), nil }

type storedTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// FileTokenStore persists the token pair from Login under the data
// directory so separate CLI invocations stay authenticated.
type FileTokenStore struct {
	Path string
}

// NewFileTokenStore uses tokens.json inside dataDir.
func NewFileTokenStore(dataDir string) *FileTokenStore {
	return &FileTokenStore{Path: filepath.Join(dataDir, "tokens.json")}
}

// Token implements TokenSource. A missing file is not an error; it just
// means no session.
func (s *FileTokenStore) Token() (string, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var st storedTokens
	if err := json.Unmarshal(b, &st); err != nil {
		return "", err
	}
	return st.AccessToken, nil
}

// Refresh returns the stored refresh token, empty when no session.
func (s *FileTokenStore) Refresh() (string, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var st storedTokens
	if err := json.Unmarshal(b, &st); err != nil {
		return "", err
	}
	return st.RefreshToken, nil
}

// Save writes the token pair with owner-only permissions.
func (s *FileTokenStore) Save(access, refresh string) error {
	b, err := json.Marshal(storedTokens{AccessToken: access, RefreshToken: refresh})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, b, 0o600)
}

// Clear removes the stored session. Clearing a missing file is a no-op.
func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
