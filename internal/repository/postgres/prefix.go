package postgres

import (
	"database/sql"
)

// PrefixRepo implements repository.PrefixRepository
type PrefixRepo struct {
	db *sql.DB
}

// NewPrefixRepo creates a new guild prefix repository
func NewPrefixRepo(db *sql.DB) *PrefixRepo {
	return &PrefixRepo{db: db}
}

// Set upserts the command prefix for a guild
func (r *PrefixRepo) Set(guildID int64, prefix string) error {
	query := `
		INSERT INTO guild_prefixes (guild_id, prefix)
		VALUES ($1, $2)
		ON CONFLICT (guild_id)
		DO UPDATE SET prefix = EXCLUDED.prefix
	`
	_, err := r.db.Exec(query, guildID, prefix)
	return err
}

// Get returns the stored prefix, or "" if the guild has no override
func (r *PrefixRepo) Get(guildID int64) (string, error) {
	var prefix string
	query := `SELECT prefix FROM guild_prefixes WHERE guild_id = $1`
	err := r.db.QueryRow(query, guildID).Scan(&prefix)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return prefix, nil
}
