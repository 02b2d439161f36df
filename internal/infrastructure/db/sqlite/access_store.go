package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clientlens/clientlens-api/internal/core/domain"
)

// AccessStore implements ports.AccessStore over the users, clients and
// user_clients tables.
type AccessStore struct {
	db *sql.DB
}

func NewAccessStore(db *sql.DB) *AccessStore {
	return &AccessStore{db: db}
}

func (s *AccessStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, role, created_at FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *AccessStore) FindUser(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, role, created_at FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

const scopeQuery = `
SELECT c.id, c.name, c.email, c.phone, c.company, c.industry, c.status, c.value,
       c.created_at, c.last_contact, uc.access_level, uc.assigned_at
FROM clients c
JOIN user_clients uc ON uc.client_id = c.id
WHERE uc.user_id = ?
ORDER BY c.name ASC`

func (s *AccessStore) ListAccessibleClients(ctx context.Context, userID int64) ([]domain.Client, error) {
	rows, err := s.db.QueryContext(ctx, scopeQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		var (
			c                               domain.Client
			email, phone, company, industry sql.NullString
			value                           sql.NullInt64
			createdAt, assignedAt           string
			lastContact                     sql.NullString
			status, access                  string
		)
		if err := rows.Scan(&c.ID, &c.Name, &email, &phone, &company, &industry, &status, &value,
			&createdAt, &lastContact, &access, &assignedAt); err != nil {
			return nil, fmt.Errorf("list clients: %w", err)
		}
		c.Email, c.Phone = email.String, phone.String
		c.Company, c.Industry = company.String, industry.String
		c.Status = domain.ClientStatus(status)
		c.AccessLevel = domain.AccessLevel(access)
		c.CreatedAt = parseTime(createdAt)
		c.AssignedAt = parseTime(assignedAt)
		if value.Valid {
			c.Value = domain.Int64(value.Int64)
		}
		if lastContact.Valid {
			t := parseTime(lastContact.String)
			c.LastContact = &t
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *AccessStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (domain.User, error) {
	var (
		u         domain.User
		role      sql.NullString
		createdAt string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &createdAt); err != nil {
		return domain.User{}, err
	}
	u.Role = role.String
	u.CreatedAt = parseTime(createdAt)
	return u, nil
}
