package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ignite/social-api/internal/domain"
)

// AccountRepo implements account.Repository.
type AccountRepo struct{ db *sql.DB }

// NewAccountRepo creates a SQL-backed account repository.
func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) GetByID(ctx context.Context, id int) (*domain.Account, error) {
	return r.one(ctx, fmt.Sprintf("get account %d", id), `
		SELECT account_id, username, password FROM account WHERE account_id = $1
	`, id)
}

func (r *AccountRepo) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.one(ctx, fmt.Sprintf("find account by username %q", username), `
		SELECT account_id, username, password FROM account WHERE username = $1
	`, username)
}

func (r *AccountRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM account WHERE username = $1)`,
		username,
	).Scan(&exists)
	if err != nil {
		return false, fault(fmt.Sprintf("check username %q", username), err)
	}
	return exists, nil
}

func (r *AccountRepo) GetAll(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT account_id, username, password FROM account ORDER BY account_id`,
	)
	if err != nil {
		return nil, fault("list accounts", err)
	}
	defer rows.Close()

	out := []domain.Account{}
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.AccountID, &a.Username, &a.Password); err != nil {
			return nil, fault("scan account", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fault("list accounts", err)
	}
	return out, nil
}

func (r *AccountRepo) Insert(ctx context.Context, a domain.Account) (*domain.Account, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO account (username, password) VALUES ($1, $2)
		RETURNING account_id
	`, a.Username, a.Password).Scan(&a.AccountID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, fault("insert account: no id returned", nil)
	case isUniqueViolation(err):
		return nil, fmt.Errorf("%w: username %q is taken", domain.ErrConflict, a.Username)
	case err != nil:
		return nil, fault("insert account", err)
	}
	return &a, nil
}

func (r *AccountRepo) Update(ctx context.Context, a domain.Account) (bool, error) {
	op := fmt.Sprintf("update account %d", a.AccountID)
	res, err := r.db.ExecContext(ctx, `
		UPDATE account SET username = $1, password = $2 WHERE account_id = $3
	`, a.Username, a.Password, a.AccountID)
	if isUniqueViolation(err) {
		return false, fmt.Errorf("%w: username %q is taken", domain.ErrConflict, a.Username)
	}
	if err != nil {
		return false, fault(op, err)
	}
	return rowsAffected(res, op)
}

func (r *AccountRepo) Delete(ctx context.Context, a domain.Account) (bool, error) {
	op := fmt.Sprintf("delete account %d", a.AccountID)
	res, err := r.db.ExecContext(ctx, `DELETE FROM account WHERE account_id = $1`, a.AccountID)
	if err != nil {
		return false, fault(op, err)
	}
	return rowsAffected(res, op)
}

// one returns nil with no error when the query matches no row.
func (r *AccountRepo) one(ctx context.Context, op, query string, args ...any) (*domain.Account, error) {
	a := &domain.Account{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&a.AccountID, &a.Username, &a.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fault(op, err)
	}
	return a, nil
}
