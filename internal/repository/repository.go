package repository

import "crabigator/internal/domain"

// CredentialRepository defines WaniKani credential operations.
// Find returns nil without error when no credential exists.
type CredentialRepository interface {
	Register(userID int64, apiToken string) error
	Find(userID int64) (*domain.Credential, error)
	Remove(userID int64) (bool, error)
}

// PrefixRepository defines guild command-prefix overrides.
// Get returns "" without error when no override exists.
type PrefixRepository interface {
	Set(guildID int64, prefix string) error
	Get(guildID int64) (string, error)
}
