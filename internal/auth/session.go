package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/zoonatech/portal-api/internal/models"
)

const sessionTokenBytes = 16 // 128-bit opaque token, hex-encoded

// SessionRegistry is the process-wide token → session mapping. Sessions live
// until explicit logout or process restart; there is no expiry sweep. All map
// access is serialized so concurrent request handlers cannot tear it.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]models.Session)}
}

// Create generates a random token and stores a session stamped with the
// current time.
func (r *SessionRegistry) Create(username, email string) (*models.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	session := models.Session{
		Token:     token,
		Username:  username,
		Email:     email,
		LoginTime: time.Now().Format(models.TimeLayout),
	}

	r.mu.Lock()
	r.sessions[token] = session
	r.mu.Unlock()

	return &session, nil
}

// Resolve looks up a session by token.
func (r *SessionRegistry) Resolve(token string) (*models.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[token]
	if !ok {
		return nil, false
	}
	return &session, true
}

// Destroy removes a session. Destroying an absent token is a no-op.
func (r *SessionRegistry) Destroy(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

func generateToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
