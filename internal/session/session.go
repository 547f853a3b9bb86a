// Package session stores the signed-in account between CLI runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/fr4nk3nst1ner/jobboard/internal/normalize"
)

const (
	RoleUser    = "user"
	RoleCompany = "company"
	RoleAdmin   = "admin"
)

// Session is the authenticated context passed explicitly to whatever needs it.
type Session struct {
	Token   string          `json:"token"`
	Role    string          `json:"role"`
	Account json.RawMessage `json:"account,omitempty"`
}

// FromLogin builds a session from a login response of the form
// {"token": ..., "role": ..., "<role>": {account}}.
func FromLogin(body []byte) (*Session, error) {
	if !gjson.ValidBytes(body) {
		return nil, normalize.ErrInvalidJSON
	}
	root := gjson.ParseBytes(body)
	s := &Session{
		Token: root.Get("token").String(),
		Role:  root.Get("role").String(),
	}
	if s.Token == "" {
		return nil, errors.New("login response carries no token")
	}
	if s.Role != "" {
		if acct := root.Get(gjson.Escape(s.Role)); acct.IsObject() {
			s.Account = json.RawMessage(acct.Raw)
		}
	}
	return s, nil
}

// Load reads a session file. A missing file yields an empty session.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the session with owner-only permissions.
func (s *Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the session file, if any.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (s *Session) Authenticated() bool { return s != nil && s.Token != "" }

// AccountID returns the signed-in account's identifier, or "".
func (s *Session) AccountID() string {
	if s == nil || len(s.Account) == 0 {
		return ""
	}
	return normalize.ResolveID(gjson.ParseBytes(s.Account))
}

func (s *Session) IsAdmin() bool   { return s != nil && s.Role == RoleAdmin }
func (s *Session) IsCompany() bool { return s != nil && s.Role == RoleCompany }
func (s *Session) IsUser() bool    { return s != nil && s.Role == RoleUser }
