package service

import (
	"fmt"

	"crabigator/internal/domain"
	"crabigator/internal/repository"
	"crabigator/internal/session"

	"go.uber.org/zap"
)

// AccountService handles credential registration and guild prefixes
type AccountService struct {
	creds         repository.CredentialRepository
	prefixes      repository.PrefixRepository
	cache         *session.Cache
	defaultPrefix string
	logger        *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	creds repository.CredentialRepository,
	prefixes repository.PrefixRepository,
	cache *session.Cache,
	defaultPrefix string,
	logger *zap.Logger,
) *AccountService {
	if defaultPrefix == "" {
		defaultPrefix = domain.DefaultPrefix
	}
	return &AccountService{
		creds:         creds,
		prefixes:      prefixes,
		cache:         cache,
		defaultPrefix: defaultPrefix,
		logger:        logger,
	}
}

// Register stores an API token for a user. The token must pass the shape
// check and the user must not already be registered.
func (s *AccountService) Register(userID int64, apiToken string) error {
	if !domain.ValidToken(apiToken) {
		return domain.ErrInvalidToken
	}

	existing, err := s.creds.Find(userID)
	if err != nil {
		return fmt.Errorf("check existing registration: %w", err)
	}
	if existing != nil {
		return domain.ErrAlreadyRegistered
	}

	if err := s.creds.Register(userID, apiToken); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", userID))
	return nil
}

// Registered reports whether a user has a stored credential
func (s *AccountService) Registered(userID int64) (bool, error) {
	cred, err := s.creds.Find(userID)
	if err != nil {
		return false, err
	}
	return cred != nil, nil
}

// Remove deletes a user's credential and cached data, reporting whether
// a record existed.
func (s *AccountService) Remove(userID int64) (bool, error) {
	existed, err := s.creds.Remove(userID)
	if err != nil {
		return false, fmt.Errorf("remove credential: %w", err)
	}

	if existed {
		s.cache.Forget(userID)
		s.logger.Info("user removed", zap.Int64("user_id", userID))
	}
	return existed, nil
}

// SetGuildPrefix stores a prefix override for a guild. The prefix must be
// a single non-empty token.
func (s *AccountService) SetGuildPrefix(guildID int64, prefix string) error {
	if !domain.ValidPrefix(prefix) {
		return domain.ErrInvalidPrefix
	}

	if err := s.prefixes.Set(guildID, prefix); err != nil {
		return fmt.Errorf("store guild prefix: %w", err)
	}

	s.logger.Info("guild prefix changed",
		zap.Int64("guild_id", guildID),
		zap.String("prefix", prefix),
	)
	return nil
}

// ResolvePrefix returns the prefix in effect for a message. Private
// channels always use the default; lookup failures fall back to the
// default so dispatch keeps working.
func (s *AccountService) ResolvePrefix(guildID int64, private bool) string {
	if private {
		return s.defaultPrefix
	}

	prefix, err := s.prefixes.Get(guildID)
	if err != nil {
		s.logger.Warn("failed to resolve guild prefix",
			zap.Int64("guild_id", guildID),
			zap.Error(err),
		)
		return s.defaultPrefix
	}
	if prefix == "" {
		return s.defaultPrefix
	}
	return prefix
}
