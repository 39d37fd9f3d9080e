package postgres

import (
	"database/sql"

	"crabigator/internal/domain"
)

// CredentialRepo implements repository.CredentialRepository
type CredentialRepo struct {
	db *sql.DB
}

// NewCredentialRepo creates a new credential repository
func NewCredentialRepo(db *sql.DB) *CredentialRepo {
	return &CredentialRepo{db: db}
}

// Register upserts the API token for a user
func (r *CredentialRepo) Register(userID int64, apiToken string) error {
	query := `
		INSERT INTO credentials (user_id, api_token)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET api_token = EXCLUDED.api_token
	`
	_, err := r.db.Exec(query, userID, apiToken)
	return err
}

// Find returns the stored credential, or nil if the user is unknown
func (r *CredentialRepo) Find(userID int64) (*domain.Credential, error) {
	var cred domain.Credential
	query := `SELECT user_id, api_token FROM credentials WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&cred.UserID, &cred.APIToken)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &cred, nil
}

// Remove deletes the credential and reports whether a record existed
func (r *CredentialRepo) Remove(userID int64) (bool, error) {
	query := `DELETE FROM credentials WHERE user_id = $1`
	res, err := r.db.Exec(query, userID)
	if err != nil {
		return false, err
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return deleted > 0, nil
}
