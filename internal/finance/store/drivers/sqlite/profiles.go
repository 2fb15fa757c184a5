package sqlite

import (
	"context"
	"database/sql"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
)

type profilesRepo struct {
	db dbtx
}

func (r *profilesRepo) GetProfile(ctx context.Context, uid string) (domain.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT uid, email, display_name, photo_url, created_at
		FROM profiles
		WHERE uid = ?`, uid)

	var (
		p        domain.UserProfile
		photoURL sql.NullString
	)
	if err := row.Scan(&p.UID, &p.Email, &p.DisplayName, &photoURL, &p.CreatedAt); err != nil {
		return domain.UserProfile{}, mapNotFound(err)
	}
	p.PhotoURL = mapNullString(photoURL)
	return p, nil
}

func (r *profilesRepo) PutProfile(ctx context.Context, p domain.UserProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (uid, email, display_name, photo_url, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (uid) DO UPDATE SET
			email = excluded.email,
			display_name = excluded.display_name,
			photo_url = excluded.photo_url`,
		p.UID, p.Email, p.DisplayName, mapStringNull(p.PhotoURL), p.CreatedAt,
	)
	return err
}

func (r *profilesRepo) UpdateDisplayName(ctx context.Context, uid string, displayName string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET display_name = ?
		WHERE uid = ?`, displayName, uid)
	if err != nil {
		return err
	}
	return requireRow(res)
}
