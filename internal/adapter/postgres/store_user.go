package postgres

import (
	"context"
	"fmt"

	"github.com/botforge/botforge/internal/domain"
	"github.com/botforge/botforge/internal/domain/user"
)

// --- Users ---

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, role_id, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		u.Email, u.RoleID, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err, "") {
		return fmt.Errorf("create user %s: %w", u.Email, domain.ErrConflict)
	}
	return err
}

func (s *Store) GetUser(ctx context.Context, id string) (*user.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, role_id, password_hash, created_at
		 FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundWrap(err, "get user %s", id)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, role_id, password_hash, created_at
		 FROM users WHERE email = $1`, email)

	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundWrap(err, "get user by email %s", email)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]user.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, email, role_id, password_hash, created_at
		 FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return orEmpty(users), rows.Err()
}

func (s *Store) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	return execExpectOne(tag, err, "update user password %s", id)
}

// --- Roles ---

func (s *Store) GetRoleByName(ctx context.Context, name string) (*user.Role, error) {
	var r user.Role
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description FROM roles WHERE name = $1`, name,
	).Scan(&r.ID, &r.Name, &r.Description)
	if err != nil {
		return nil, notFoundWrap(err, "get role %s", name)
	}
	return &r, nil
}

// EnsureRole inserts the role if missing and returns the stored row either way.
func (s *Store) EnsureRole(ctx context.Context, name, description string) (*user.Role, error) {
	var r user.Role
	err := s.pool.QueryRow(ctx,
		`INSERT INTO roles (name, description) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		 RETURNING id, name, description`,
		name, description,
	).Scan(&r.ID, &r.Name, &r.Description)
	if err != nil {
		return nil, fmt.Errorf("ensure role %s: %w", name, err)
	}
	return &r, nil
}

func scanUser(row scannable) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.RoleID, &u.PasswordHash, &u.CreatedAt)
	return u, err
}
