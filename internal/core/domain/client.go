package domain

import "time"

// ClientStatus is the lifecycle flag of a client account.
type ClientStatus string

const (
	StatusActive   ClientStatus = "active"
	StatusInactive ClientStatus = "inactive"
)

// AccessLevel is attached to every user/client grant. It is carried through for
// display only; the core does not enforce read vs full differently.
type AccessLevel string

const (
	AccessRead AccessLevel = "read"
	AccessFull AccessLevel = "full"
)

// Client is a customer record as seen through one user's grant.
type Client struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Company     string       `json:"company"`
	Industry    string       `json:"industry"`
	Status      ClientStatus `json:"status"`
	Value       *int64       `json:"value"` // nil when the source row has no value
	CreatedAt   time.Time    `json:"created_at"`
	LastContact *time.Time   `json:"last_contact,omitempty"`

	// Grant metadata for the user the record was resolved for.
	AccessLevel AccessLevel `json:"access_level,omitempty"`
	AssignedAt  time.Time   `json:"assigned_at,omitempty"`
}

// ValueOrZero returns the monetary value, treating a missing value as 0.
func (c Client) ValueOrZero() int64 {
	if c.Value == nil {
		return 0
	}
	return *c.Value
}

// IsActive reports whether the client status is exactly "active".
func (c Client) IsActive() bool {
	return c.Status == StatusActive
}

// AccessGrant links a user to a client. (UserID, ClientID) is unique.
type AccessGrant struct {
	UserID      int64       `json:"user_id"`
	ClientID    int64       `json:"client_id"`
	AccessLevel AccessLevel `json:"access_level"`
	GrantedAt   time.Time   `json:"granted_at"`
}

// Int64 returns a pointer to v. Handy for building Client values.
func Int64(v int64) *int64 { return &v }
