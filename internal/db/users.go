// ABOUTME: Database operations for user accounts.
// ABOUTME: Provides creation and lookup by ID or username.

package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harper/notes/internal/models"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username already taken")

func CreateUser(db *sql.DB, user *models.User) error {
	_, err := db.Exec(
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		user.ID.String(), user.Username, user.PasswordHash, user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrUsernameTaken, user.Username)
	}
	return err
}

func GetUserByID(db *sql.DB, id uuid.UUID) (*models.User, error) {
	row := db.QueryRow(
		`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`,
		id.String(),
	)
	return scanUser(row)
}

func GetUserByUsername(db *sql.DB, username string) (*models.User, error) {
	row := db.QueryRow(
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

func ListUsers(db *sql.DB) ([]*models.User, error) {
	rows, err := db.Query(
		`SELECT id, username, password_hash, created_at FROM users ORDER BY username`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func scanUser(s scanner) (*models.User, error) {
	user := &models.User{}
	var idStr string
	err := s.Scan(&idStr, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in database: %w", err)
	}
	return user, nil
}
