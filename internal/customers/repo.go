package customers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// unique_violation on customers.email
const pgUniqueViolation = "23505"

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, firstName, lastName, email, passwordHash string) (*Customer, error) {
	var c Customer
	err := r.DB.QueryRow(ctx, `
		INSERT INTO customers (first_name, last_name, email, password, role)
		VALUES ($1, $2, $3, $4, 'customer')
		RETURNING customer_id, first_name, last_name, email, role`,
		firstName, lastName, email, passwordHash).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &c, nil
}

// GetByEmail also returns the stored bcrypt hash for login verification.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*Customer, string, error) {
	var (
		c    Customer
		hash string
	)
	err := r.DB.QueryRow(ctx, `
		SELECT customer_id, first_name, last_name, email, password, role
		FROM customers
		WHERE email = $1`, email).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &hash, &c.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return &c, hash, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	err := r.DB.QueryRow(ctx, `
		SELECT customer_id, first_name, last_name, email, role
		FROM customers
		WHERE customer_id = $1`, id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
