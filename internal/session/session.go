// Package session tracks which users hold an active sign-in token. Tokens
// live only in process memory; a restart signs everyone out.
package session

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotSignedIn     = errors.New("user not signed in")
)

// Registry is the session store handlers are given. At most one token is
// active per user; creating a new one invalidates the previous.
type Registry interface {
	Create(username string) string
	Resolve(token string) (string, error)
	Revoke(username string) error
	Online() []string
}

// Memory is the in-process Registry implementation.
type Memory struct {
	mu     sync.Mutex
	salt   string
	tokens map[string]string // username -> token
}

func NewMemory(salt string) *Memory {
	return &Memory{salt: salt, tokens: make(map[string]string)}
}

// Create mints a fresh token for username, overwriting any prior one.
// The token is a salted SHA-512 of a random UUID, hex encoded.
func (m *Memory) Create(username string) string {
	sum := sha512.Sum512([]byte(uuid.NewString() + m.salt))
	token := hex.EncodeToString(sum[:])

	m.mu.Lock()
	m.tokens[username] = token
	m.mu.Unlock()
	return token
}

// Resolve returns the username holding token.
func (m *Memory) Resolve(token string) (string, error) {
	if token == "" {
		return "", ErrSessionNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for username, t := range m.tokens {
		if t == token {
			return username, nil
		}
	}
	return "", ErrSessionNotFound
}

// Revoke removes username's active session.
func (m *Memory) Revoke(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[username]; !ok {
		return ErrNotSignedIn
	}
	delete(m.tokens, username)
	return nil
}

// Online lists every username with an active token, sorted for stable
// output.
func (m *Memory) Online() []string {
	m.mu.Lock()
	users := make([]string, 0, len(m.tokens))
	for username := range m.tokens {
		users = append(users, username)
	}
	m.mu.Unlock()

	sort.Strings(users)
	return users
}
