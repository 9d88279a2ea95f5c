package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users
		  (id, email, password_hash, first_name, last_name, role, is_blocked,
		   address, city, postal_code, phone, profile_picture)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.IsBlocked,
		u.Address.Address, u.Address.City, u.Address.PostalCode, u.Phone, u.ProfilePicture)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrEmailTaken
	}
	return err
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, role, is_blocked,
		       address, city, postal_code, phone, profile_picture, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (r *postgresRepository) ListUsers(ctx context.Context) ([]*User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, role, is_blocked,
		       address, city, postal_code, phone, profile_picture, created_at, updated_at
		FROM users
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresRepository) UpdateUser(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET password_hash=$1, first_name=$2, last_name=$3, role=$4, is_blocked=$5,
		    address=$6, city=$7, postal_code=$8, phone=$9, profile_picture=$10, updated_at=NOW()
		WHERE email=$11
	`
	res, err := r.db.ExecContext(ctx, query,
		u.PasswordHash, u.FirstName, u.LastName, u.Role, u.IsBlocked,
		u.Address.Address, u.Address.City, u.Address.PostalCode, u.Phone, u.ProfilePicture,
		u.Email)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*User, error) {
	u := &User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &u.IsBlocked,
		&u.Address.Address, &u.Address.City, &u.Address.PostalCode, &u.Phone, &u.ProfilePicture,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}
