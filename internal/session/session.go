// Package session simulates login for a single local user. There is no credential
// check: any non-empty username/password pair is accepted and the identity is
// kept in the KV until logout.
package session

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/nakachan-ing/zentasks/internal/store"
)

type Manager struct {
	kv     store.KV
	keys   store.Keys
	clock  clock.Clock
	logger *log.Logger
}

func NewManager(kv store.KV, keys store.Keys, clk clock.Clock, logger *log.Logger) *Manager {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{kv: kv, keys: keys, clock: clk, logger: logger}
}

// RestoreSession returns the persisted identity. Absent, unreadable or malformed
// entries all mean "not logged in".
func (m *Manager) RestoreSession() (*model.User, bool) {
	raw, ok, err := m.kv.Get(m.keys.User)
	if err != nil {
		m.logger.Printf("⚠️ Failed to read session: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || strings.TrimSpace(user.Username) == "" {
		m.logger.Printf("⚠️ Ignoring malformed session entry")
		return nil, false
	}
	return &user, true
}

func (m *Manager) Login(username, password string) (model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.User{}, fmt.Errorf("username is required: %w", model.ErrInvalidInput)
	}
	if password == "" {
		return model.User{}, fmt.Errorf("password is required: %w", model.ErrInvalidInput)
	}
	return m.start(username), nil
}

func (m *Manager) Signup(username, password, confirmPassword string) (model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || confirmPassword == "" {
		return model.User{}, fmt.Errorf("username, password and confirmation are required: %w", model.ErrInvalidInput)
	}
	if password != confirmPassword {
		return model.User{}, model.ErrPasswordMismatch
	}
	return m.start(username), nil
}

// start creates and persists the identity. A failed write still logs the user in
// for this process.
func (m *Manager) start(username string) model.User {
	user := model.User{
		Username: username,
		ID:       m.clock.Now().UnixMilli(),
	}
	if err := store.SaveJson(m.kv, m.keys.User, user); err != nil {
		m.logger.Printf("⚠️ Session not saved: %v", err)
	}
	return user
}

// Logout forgets the identity but keeps tasks, goals and theme.
func (m *Manager) Logout() error {
	if err := m.kv.Remove(m.keys.User); err != nil {
		return fmt.Errorf("❌ Failed to clear session: %w", err)
	}
	return nil
}

// ClearAllData wipes identity, tasks, goals and theme.
func (m *Manager) ClearAllData() error {
	if err := m.kv.Clear(); err != nil {
		return fmt.Errorf("❌ Failed to clear data: %w", err)
	}
	return nil
}
