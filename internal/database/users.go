package database

import (
	"context"
)

const createUser = `
INSERT INTO users (user_id, email, hashed_password, full_name, role, is_active, is_verified)
VALUES ($1, $2, $3, $4, $5, TRUE, TRUE)
RETURNING user_id, email, hashed_password, full_name, role, is_active, is_verified, created_at, updated_at
`

type CreateUserParams struct {
	UserID         string
	Email          string
	HashedPassword string
	FullName       string
	Role           UserRole
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.UserID, arg.Email, arg.HashedPassword, arg.FullName, arg.Role)
	var u User
	err := row.Scan(&u.UserID, &u.Email, &u.HashedPassword, &u.FullName, &u.Role, &u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const getUserByEmail = `
SELECT user_id, email, hashed_password, full_name, role, is_active, is_verified, created_at, updated_at
FROM users WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(&u.UserID, &u.Email, &u.HashedPassword, &u.FullName, &u.Role, &u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const getUserByID = `
SELECT user_id, email, hashed_password, full_name, role, is_active, is_verified, created_at, updated_at
FROM users WHERE user_id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, userID string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, userID)
	var u User
	err := row.Scan(&u.UserID, &u.Email, &u.HashedPassword, &u.FullName, &u.Role, &u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const updateUserPassword = `
UPDATE users SET hashed_password = $2, updated_at = now() WHERE user_id = $1
`

func (q *Queries) UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error {
	_, err := q.db.Exec(ctx, updateUserPassword, userID, hashedPassword)
	return err
}

const deactivateUser = `
UPDATE users SET is_active = FALSE, updated_at = now() WHERE user_id = $1
`

func (q *Queries) DeactivateUser(ctx context.Context, userID string) error {
	_, err := q.db.Exec(ctx, deactivateUser, userID)
	return err
}

const listUsers = `
SELECT user_id, email, hashed_password, full_name, role, is_active, is_verified, created_at, updated_at
FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2
`

func (q *Queries) ListUsers(ctx context.Context, skip, limit int32) ([]User, error) {
	rows, err := q.db.Query(ctx, listUsers, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.UserID, &u.Email, &u.HashedPassword, &u.FullName, &u.Role, &u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const listPatients = `
SELECT user_id, email, hashed_password, full_name, role, is_active, is_verified, created_at, updated_at
FROM users WHERE role = 'patient' ORDER BY created_at DESC
`

func (q *Queries) ListPatients(ctx context.Context) ([]User, error) {
	rows, err := q.db.Query(ctx, listPatients)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.UserID, &u.Email, &u.HashedPassword, &u.FullName, &u.Role, &u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
