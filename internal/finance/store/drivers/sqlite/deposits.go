package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
)

type depositsRepo struct {
	db dbtx
}

const depositColumns = `id, user_id, bank_name, amount, annual_rate, start_date,
	maturity_date, withholding_tax, status, alert_sent, created_at, updated_at`

func (r *depositsRepo) CreateDeposit(ctx context.Context, d domain.Deposit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deposits (`+depositColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.BankName, d.Amount, d.AnnualRate, d.StartDate,
		d.MaturityDate, d.WithholdingTax, string(d.Status), d.AlertSent,
		d.CreatedAt, d.UpdatedAt,
	)
	return err
}

func (r *depositsRepo) GetDepositByID(ctx context.Context, id string) (domain.Deposit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+depositColumns+`
		FROM deposits
		WHERE id = ?`, id)
	return scanDeposit(row)
}

func (r *depositsRepo) ListDepositsByUser(ctx context.Context, userID string) ([]domain.Deposit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+depositColumns+`
		FROM deposits
		WHERE user_id = ?
		ORDER BY maturity_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeposits(rows)
}

func (r *depositsRepo) ListActiveDeposits(ctx context.Context, userID string) ([]domain.Deposit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+depositColumns+`
		FROM deposits
		WHERE user_id = ? AND status = ?
		ORDER BY maturity_date ASC`, userID, string(domain.DepositActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeposits(rows)
}

func (r *depositsRepo) ListAllActiveDeposits(ctx context.Context) ([]domain.Deposit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+depositColumns+`
		FROM deposits
		WHERE status = ?
		ORDER BY maturity_date ASC`, string(domain.DepositActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeposits(rows)
}

func (r *depositsRepo) UpdateDeposit(ctx context.Context, d domain.Deposit) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE deposits
		SET bank_name = ?, amount = ?, annual_rate = ?, start_date = ?,
		    maturity_date = ?, withholding_tax = ?, updated_at = ?
		WHERE id = ?`,
		d.BankName, d.Amount, d.AnnualRate, d.StartDate,
		d.MaturityDate, d.WithholdingTax, time.Now().UTC(), d.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *depositsRepo) UpdateDepositStatus(ctx context.Context, id string, status domain.DepositStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE deposits
		SET status = ?, updated_at = ?
		WHERE id = ?`, string(status), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *depositsRepo) MarkAlertSent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE deposits
		SET alert_sent = 1, updated_at = ?
		WHERE id = ?`, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *depositsRepo) DeleteDeposit(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM deposits WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanDeposit(row rowScanner) (domain.Deposit, error) {
	var (
		d      domain.Deposit
		status string
	)
	err := row.Scan(&d.ID, &d.UserID, &d.BankName, &d.Amount, &d.AnnualRate,
		&d.StartDate, &d.MaturityDate, &d.WithholdingTax, &status,
		&d.AlertSent, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Deposit{}, mapNotFound(err)
	}
	d.Status = domain.DepositStatus(status)
	return d, nil
}

func collectDeposits(rows *sql.Rows) ([]domain.Deposit, error) {
	var out []domain.Deposit
	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
