package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
)

type pensionsRepo struct {
	db dbtx
}

func (r *pensionsRepo) CreatePension(ctx context.Context, p domain.PensionAccount) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pension_accounts (id, user_id, institution_name, current_value,
			last_update_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.InstitutionName, p.CurrentValue,
		p.LastUpdateDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	for _, c := range p.Contributions {
		if err := r.AddContribution(ctx, p.ID, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *pensionsRepo) GetPensionByID(ctx context.Context, id string) (domain.PensionAccount, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, institution_name, current_value, last_update_date,
			created_at, updated_at
		FROM pension_accounts
		WHERE id = ?`, id)

	p, err := scanPension(row)
	if err != nil {
		return domain.PensionAccount{}, err
	}
	p.Contributions, err = r.listContributions(ctx, p.ID)
	if err != nil {
		return domain.PensionAccount{}, err
	}
	return p, nil
}

func (r *pensionsRepo) ListPensionsByUser(ctx context.Context, userID string) ([]domain.PensionAccount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, institution_name, current_value, last_update_date,
			created_at, updated_at
		FROM pension_accounts
		WHERE user_id = ?
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PensionAccount
	for rows.Next() {
		p, err := scanPension(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].Contributions, err = r.listContributions(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *pensionsRepo) UpdatePensionValue(ctx context.Context, id string, value float64, asOf time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pension_accounts
		SET current_value = ?, last_update_date = ?, updated_at = ?
		WHERE id = ?`, value, asOf, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pensionsRepo) AddContribution(ctx context.Context, accountID string, c domain.Contribution) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contributions (id, account_id, date, amount, tax_benefit,
			withdrawable, withdrawable_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, accountID, c.Date, c.Amount, c.TaxBenefit,
		c.Withdrawable, mapOptionalTime(c.WithdrawableDate),
	)
	return err
}

func (r *pensionsRepo) DeletePension(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pension_accounts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pensionsRepo) listContributions(ctx context.Context, accountID string) ([]domain.Contribution, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, amount, tax_benefit, withdrawable, withdrawable_date
		FROM contributions
		WHERE account_id = ?
		ORDER BY date ASC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Contribution
	for rows.Next() {
		var (
			c  domain.Contribution
			wd sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.Date, &c.Amount, &c.TaxBenefit, &c.Withdrawable, &wd); err != nil {
			return nil, err
		}
		c.WithdrawableDate = mapNullTimePtr(wd)
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanPension(row rowScanner) (domain.PensionAccount, error) {
	var p domain.PensionAccount
	err := row.Scan(&p.ID, &p.UserID, &p.InstitutionName, &p.CurrentValue,
		&p.LastUpdateDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.PensionAccount{}, mapNotFound(err)
	}
	return p, nil
}
