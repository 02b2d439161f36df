// Package seed holds the sample dataset loaded into an empty access store.
package seed

import (
	"sort"
	"time"

	"github.com/clientlens/clientlens-api/internal/core/domain"
)

// seededAt is the fixed timestamp every sample row carries.
var seededAt = time.Date(2025, time.July, 28, 10, 0, 0, 0, time.UTC)

// Users returns the five sample users.
func Users() []domain.User {
	return []domain.User{
		{ID: 1, Name: "User 1", Email: "user1@company.com", Role: "Manager", CreatedAt: seededAt},
		{ID: 2, Name: "User 2", Email: "user2@company.com", Role: "Sales Rep", CreatedAt: seededAt},
		{ID: 3, Name: "User 3", Email: "user3@company.com", Role: "Support", CreatedAt: seededAt},
		{ID: 4, Name: "User 4", Email: "user4@company.com", Role: "Sales Rep", CreatedAt: seededAt},
		{ID: 5, Name: "User 5", Email: "user5@company.com", Role: "Admin", CreatedAt: seededAt},
	}
}

// Clients returns the twenty sample clients. Client 17 is the only inactive
// one and carries a value of 0.
func Clients() []domain.Client {
	at := seededAt
	return []domain.Client{
		{ID: 1, Name: "Client 1", Email: "client1@company.com", Phone: "+91 1234567890", Company: "Company 1", Industry: "Technology", Status: domain.StatusActive, Value: domain.Int64(150000), CreatedAt: seededAt, LastContact: &at},
		{ID: 2, Name: "Client 2", Email: "client2@company.com", Phone: "+91 1234567890", Company: "Company 2", Industry: "Software", Status: domain.StatusActive, Value: domain.Int64(85000), CreatedAt: seededAt, LastContact: &at},
		{ID: 3, Name: "Client 3", Email: "client3@company.com", Phone: "+91 1234567890", Company: "Company 3", Industry: "Manufacturing", Status: domain.StatusActive, Value: domain.Int64(320000), CreatedAt: seededAt, LastContact: &at},
		{ID: 4, Name: "Client 4", Email: "client4@company.com", Phone: "+91 1234567890", Company: "Company 4", Industry: "Healthcare", Status: domain.StatusActive, Value: domain.Int64(95000), CreatedAt: seededAt, LastContact: &at},
		{ID: 5, Name: "Client 5", Email: "client5@company.com", Phone: "+91 1234567890", Company: "Company 5", Industry: "Finance", Status: domain.StatusActive, Value: domain.Int64(220000), CreatedAt: seededAt, LastContact: &at},
		{ID: 6, Name: "Client 6", Email: "client6@company.com", Phone: "+91 1234567890", Company: "Company 6", Industry: "Retail", Status: domain.StatusActive, Value: domain.Int64(45000), CreatedAt: seededAt, LastContact: &at},
		{ID: 7, Name: "Client 7", Email: "client7@company.com", Phone: "+91 1234567890", Company: "Company 7", Industry: "Construction", Status: domain.StatusActive, Value: domain.Int64(180000), CreatedAt: seededAt, LastContact: &at},
		{ID: 8, Name: "Client 8", Email: "client8@company.com", Phone: "+91 1234567890", Company: "Company 8", Industry: "Education", Status: domain.StatusActive, Value: domain.Int64(65000), CreatedAt: seededAt, LastContact: &at},
		{ID: 9, Name: "Client 9", Email: "client9@company.com", Phone: "+91 1234567890", Company: "Company 9", Industry: "Transportation", Status: domain.StatusActive, Value: domain.Int64(110000), CreatedAt: seededAt, LastContact: &at},
		{ID: 10, Name: "Client 10", Email: "client10@company.com", Phone: "+91 1234567890", Company: "Company 10", Industry: "Agriculture", Status: domain.StatusActive, Value: domain.Int64(75000), CreatedAt: seededAt, LastContact: &at},
		{ID: 11, Name: "Client 11", Email: "client11@company.com", Phone: "+91 1234567890", Company: "Company 11", Industry: "Media", Status: domain.StatusActive, Value: domain.Int64(55000), CreatedAt: seededAt, LastContact: &at},
		{ID: 12, Name: "Client 12", Email: "client12@company.com", Phone: "+91 1234567890", Company: "Company 12", Industry: "Consulting", Status: domain.StatusActive, Value: domain.Int64(135000), CreatedAt: seededAt, LastContact: &at},
		{ID: 13, Name: "Client 13", Email: "client13@company.com", Phone: "+91 1234567890", Company: "Company 13", Industry: "Energy", Status: domain.StatusActive, Value: domain.Int64(290000), CreatedAt: seededAt, LastContact: &at},
		{ID: 14, Name: "Client 14", Email: "client14@company.com", Phone: "+91 1234567890", Company: "Company 14", Industry: "Hospitality", Status: domain.StatusActive, Value: domain.Int64(80000), CreatedAt: seededAt, LastContact: &at},
		{ID: 15, Name: "Client 15", Email: "client15@company.com", Phone: "+91 1234567890", Company: "Company 15", Industry: "Automotive", Status: domain.StatusActive, Value: domain.Int64(125000), CreatedAt: seededAt, LastContact: &at},
		{ID: 16, Name: "Client 16", Email: "client16@company.com", Phone: "+91 1234567890", Company: "Company 16", Industry: "Pharmaceuticals", Status: domain.StatusActive, Value: domain.Int64(200000), CreatedAt: seededAt, LastContact: &at},
		{ID: 17, Name: "Client 17", Email: "client17@company.com", Phone: "+91 1234567890", Company: "Company 17", Industry: "Real Estate", Status: domain.StatusInactive, Value: domain.Int64(0), CreatedAt: seededAt, LastContact: &at},
		{ID: 18, Name: "Client 18", Email: "client18@company.com", Phone: "+91 1234567890", Company: "Company 18", Industry: "Food & Beverage", Status: domain.StatusActive, Value: domain.Int64(90000), CreatedAt: seededAt, LastContact: &at},
		{ID: 19, Name: "Client 19", Email: "client19@company.com", Phone: "+91 1234567890", Company: "Company 19", Industry: "Insurance", Status: domain.StatusActive, Value: domain.Int64(165000), CreatedAt: seededAt, LastContact: &at},
		{ID: 20, Name: "Client 20", Email: "client20@company.com", Phone: "+91 1234567890", Company: "Company 20", Industry: "Fashion", Status: domain.StatusActive, Value: domain.Int64(40000), CreatedAt: seededAt, LastContact: &at},
	}
}

// Grants returns the user/client access grants. Several clients are shared
// between users.
func Grants() []domain.AccessGrant {
	return []domain.AccessGrant{
		{UserID: 1, ClientID: 1, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 1, ClientID: 3, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 1, ClientID: 5, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 1, ClientID: 13, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 1, ClientID: 16, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 1, ClientID: 19, AccessLevel: domain.AccessRead, GrantedAt: seededAt},
		{UserID: 2, ClientID: 1, AccessLevel: domain.AccessRead, GrantedAt: seededAt},
		{UserID: 2, ClientID: 2, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 2, ClientID: 7, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 2, ClientID: 9, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 2, ClientID: 12, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 2, ClientID: 15, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 3, ClientID: 4, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 3, ClientID: 6, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 3, ClientID: 8, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 3, ClientID: 10, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 3, ClientID: 14, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 3, ClientID: 18, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 4, ClientID: 11, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 4, ClientID: 17, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 4, ClientID: 20, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
		{UserID: 4, ClientID: 3, AccessLevel: domain.AccessRead, GrantedAt: seededAt},
		{UserID: 4, ClientID: 5, AccessLevel: domain.AccessRead, GrantedAt: seededAt},
		{UserID: 5, ClientID: 1, AccessLevel: domain.AccessRead, GrantedAt: seededAt},
		{UserID: 5, ClientID: 3, AccessLevel: domain.AccessRead, GrantedAt: seededAt},
		{UserID: 5, ClientID: 5, AccessLevel: domain.AccessRead, GrantedAt: seededAt},
		{UserID: 5, ClientID: 13, AccessLevel: domain.AccessRead, GrantedAt: seededAt},
		{UserID: 5, ClientID: 16, AccessLevel: domain.AccessRead, GrantedAt: seededAt},
		{UserID: 5, ClientID: 19, AccessLevel: domain.AccessFull, GrantedAt: seededAt},
	}
}

// Scope resolves the sample grants for userID the way a store would: clients
// ordered by name, tagged with the grant's access level.
func Scope(userID int64) []domain.Client {
	byID := make(map[int64]domain.Client)
	for _, c := range Clients() {
		byID[c.ID] = c
	}
	var out []domain.Client
	for _, g := range Grants() {
		if g.UserID != userID {
			continue
		}
		c := byID[g.ClientID]
		c.AccessLevel = g.AccessLevel
		c.AssignedAt = g.GrantedAt
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
