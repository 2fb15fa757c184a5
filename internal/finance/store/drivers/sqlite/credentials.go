package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/internal/finance/store"
)

type credentialsRepo struct {
	db dbtx
}

const credentialColumns = `uid, email, password_hash, display_name, photo_url, disabled, created_at, updated_at`

func (r *credentialsRepo) CreateCredential(ctx context.Context, c domain.Credential) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (`+credentialColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.UID, c.Email, c.PasswordHash, c.DisplayName, mapStringNull(c.PhotoURL),
		c.Disabled, c.CreatedAt, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *credentialsRepo) GetCredentialByEmail(ctx context.Context, email string) (domain.Credential, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+credentialColumns+`
		FROM credentials
		WHERE email = ? COLLATE NOCASE`, email)
	return scanCredential(row)
}

func (r *credentialsRepo) GetCredentialByUID(ctx context.Context, uid string) (domain.Credential, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+credentialColumns+`
		FROM credentials
		WHERE uid = ?`, uid)
	return scanCredential(row)
}

func (r *credentialsRepo) UpdateDisplayName(ctx context.Context, uid string, displayName string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE credentials
		SET display_name = ?, updated_at = ?
		WHERE uid = ?`, displayName, time.Now().UTC(), uid)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCredential(row rowScanner) (domain.Credential, error) {
	var (
		c        domain.Credential
		photoURL sql.NullString
	)
	err := row.Scan(&c.UID, &c.Email, &c.PasswordHash, &c.DisplayName,
		&photoURL, &c.Disabled, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	c.PhotoURL = mapNullString(photoURL)
	return c, nil
}
