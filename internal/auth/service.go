package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entities"
)

var (
	ErrInvalidAPIKey  = errors.New("invalid or missing API key")
	ErrAPIKeyNotFound = errors.New("api key not found")
	ErrNameRequired   = errors.New("api key name is required")
)

// KeyStore persists API key records.
type KeyStore interface {
	Create(ctx context.Context, key *entities.APIKey) error
	FindActiveByPrefix(ctx context.Context, prefix string) ([]entities.APIKey, error)
	List(ctx context.Context) ([]entities.APIKey, error)
	Revoke(ctx context.Context, id string) (bool, error)
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
}

// touchInterval bounds how often a key's last-used time is written.
const touchInterval = time.Minute

// Service issues and validates API keys.
type Service struct {
	store  KeyStore
	config config.Auth
	now    func() time.Time
}

// NewService creates a new API key service. store may be nil, in which case
// only the static key from cfg is accepted.
func NewService(store KeyStore, cfg config.Auth) *Service {
	return &Service{
		store:  store,
		config: cfg,
		now:    time.Now,
	}
}

// IsAuthEnabled returns true if API keys are required.
func (s *Service) IsAuthEnabled() bool {
	return s.config.Mode != config.AuthModeNone
}

// CreateKey generates and stores a new key. The plaintext key is returned
// once and cannot be recovered later.
func (s *Service) CreateKey(ctx context.Context, name string) (string, *entities.APIKey, error) {
	if name == "" {
		return "", nil, ErrNameRequired
	}
	if s.store == nil {
		return "", nil, errors.New("no key store configured")
	}

	plaintext, err := GenerateKey()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate key: %w", err)
	}

	hash, err := HashKey(plaintext, s.config.BcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash key: %w", err)
	}

	record := &entities.APIKey{
		ID:      uuid.NewString(),
		Name:    name,
		Prefix:  LookupPrefix(plaintext),
		KeyHash: hash,
	}
	if err := s.store.Create(ctx, record); err != nil {
		return "", nil, err
	}

	return plaintext, record, nil
}

// Validate checks a presented key. It returns ErrInvalidAPIKey for unknown,
// revoked or empty keys; any other error means the key store failed.
func (s *Service) Validate(ctx context.Context, presented string) error {
	if presented == "" {
		return ErrInvalidAPIKey
	}

	if s.config.APIKey != "" &&
		subtle.ConstantTimeCompare([]byte(presented), []byte(s.config.APIKey)) == 1 {
		return nil
	}

	prefix := LookupPrefix(presented)
	if s.store == nil || prefix == "" {
		return ErrInvalidAPIKey
	}

	candidates, err := s.store.FindActiveByPrefix(ctx, prefix)
	if err != nil {
		return err
	}

	for _, candidate := range candidates {
		if CheckKey(presented, candidate.KeyHash) != nil {
			continue
		}
		s.touch(ctx, candidate)
		return nil
	}

	return ErrInvalidAPIKey
}

func (s *Service) touch(ctx context.Context, key entities.APIKey) {
	now := s.now()
	if key.LastUsedAt != nil && now.Sub(*key.LastUsedAt) < touchInterval {
		return
	}
	if err := s.store.TouchLastUsed(ctx, key.ID, now); err != nil {
		log.Warn().Err(err).Str("key_id", key.ID).Msg("failed to record api key usage")
	}
}

// ListKeys returns all stored keys without their hashes.
func (s *Service) ListKeys(ctx context.Context) ([]entities.APIKey, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx)
}

// RevokeKey disables a stored key.
func (s *Service) RevokeKey(ctx context.Context, id string) error {
	if s.store == nil {
		return ErrAPIKeyNotFound
	}
	revoked, err := s.store.Revoke(ctx, id)
	if err != nil {
		return err
	}
	if !revoked {
		return ErrAPIKeyNotFound
	}
	return nil
}
