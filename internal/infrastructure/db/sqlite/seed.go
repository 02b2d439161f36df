package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clientlens/clientlens-api/internal/pkg/seed"
)

// Seed loads the sample dataset when the users table is empty. It reports
// whether any rows were written.
func Seed(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return false, fmt.Errorf("seed: count users: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("seed: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, u := range seed.Users() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, name, email, role, created_at) VALUES (?, ?, ?, ?, ?)`,
			u.ID, u.Name, u.Email, u.Role, formatTime(u.CreatedAt)); err != nil {
			return false, fmt.Errorf("seed: insert user %d: %w", u.ID, err)
		}
	}

	for _, c := range seed.Clients() {
		var value, lastContact any
		if c.Value != nil {
			value = *c.Value
		}
		if c.LastContact != nil {
			lastContact = formatTime(*c.LastContact)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO clients (id, name, email, phone, company, industry, status, value, created_at, last_contact)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Email, c.Phone, c.Company, c.Industry, string(c.Status), value,
			formatTime(c.CreatedAt), lastContact); err != nil {
			return false, fmt.Errorf("seed: insert client %d: %w", c.ID, err)
		}
	}

	for _, g := range seed.Grants() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_clients (user_id, client_id, access_level, assigned_at) VALUES (?, ?, ?, ?)`,
			g.UserID, g.ClientID, string(g.AccessLevel), formatTime(g.GrantedAt)); err != nil {
			return false, fmt.Errorf("seed: insert grant %d/%d: %w", g.UserID, g.ClientID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("seed: commit: %w", err)
	}
	return true, nil
}
