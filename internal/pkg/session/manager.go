// internal/pkg/session/manager.go
package session

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	xerrors "parkreg-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
)

// Manager stores applicant sessions in Redis. Redis is the only source of
// truth; an expired key is an expired session.
type Manager struct {
	client *redis.Client
	ttl    time.Duration
}

func NewManager(client *redis.Client, ttl time.Duration) *Manager {
	return &Manager{client: client, ttl: ttl}
}

func (m *Manager) sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Create issues a new session token for an applicant and stores it in Redis.
func (m *Manager) Create(ctx context.Context, applicantID int64, registrantType string) (*SessionData, error) {
	token, err := ulid.New(ulid.Now(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &SessionData{
		Token:          token.String(),
		ApplicantID:    applicantID,
		RegistrantType: registrantType,
		CreatedAt:      now,
		ExpiresAt:      now.Add(m.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := m.client.Set(ctx, m.sessionKey(session.Token), data, m.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session in redis: %w", err)
	}

	return session, nil
}

// Get resolves a session token to its session data.
func (m *Manager) Get(ctx context.Context, token string) (*SessionData, error) {
	data, err := m.client.Get(ctx, m.sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, xerrors.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, xerrors.ErrSessionExpired
	}
	return &session, nil
}

// Destroy removes a session.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if err := m.client.Del(ctx, m.sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
