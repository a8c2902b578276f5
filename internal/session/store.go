package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wims/storefront/internal/models"
)

// Fixed storage keys, kept compatible with earlier storefront builds so an
// existing local session keeps working.
const (
	TokenKey = "jwtToken"
	BuyerKey = "buyerData"
)

// ErrNotFound is returned when a key has never been written or was cleared.
var ErrNotFound = errors.New("session: key not found")

// Store is the durable key-value storage behind a session. Only the session
// ever writes to it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Session holds the auth token and buyer profile for the current user,
// persisted across restarts until overwritten or cleared.
type Session struct {
	store Store
}

// New creates a session backed by the given store.
func New(store Store) *Session {
	return &Session{store: store}
}

// SaveToken durably records the bearer token issued at login.
func (s *Session) SaveToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, TokenKey, []byte(token))
}

// Token returns the stored bearer token. Satisfies gateway.TokenSource.
func (s *Session) Token(ctx context.Context) (string, error) {
	b, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SaveBuyer durably records the buyer profile.
func (s *Session) SaveBuyer(ctx context.Context, buyer models.BuyerProfile) error {
	b, err := json.Marshal(buyer)
	if err != nil {
		return fmt.Errorf("encoding buyer profile: %w", err)
	}
	return s.store.Set(ctx, BuyerKey, b)
}

// Buyer returns the stored buyer profile, or nil with ErrNotFound when no
// profile has been saved.
func (s *Session) Buyer(ctx context.Context) (*models.BuyerProfile, error) {
	b, err := s.store.Get(ctx, BuyerKey)
	if err != nil {
		return nil, err
	}
	var buyer models.BuyerProfile
	if err := json.Unmarshal(b, &buyer); err != nil {
		return nil, fmt.Errorf("decoding buyer profile: %w", err)
	}
	return &buyer, nil
}

// Clear removes the token and buyer profile (logout).
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, TokenKey); err != nil {
		return err
	}
	return s.store.Delete(ctx, BuyerKey)
}
