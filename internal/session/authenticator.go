package session

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Authenticator is the pluggable credential check. The storefront ships
// with the mock table below; a real backend can be substituted without
// touching any call site.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*User, error)
}

type mockUser struct {
	passwordHash []byte
	role         Role
	displayName  string
}

// MockAuthenticator verifies against an in-memory credential table, with a
// short artificial delay standing in for a network round trip.
type MockAuthenticator struct {
	users map[string]mockUser
	delay time.Duration
}

func NewMockAuthenticator() *MockAuthenticator {
	a := &MockAuthenticator{
		users: make(map[string]mockUser),
		delay: 300 * time.Millisecond,
	}
	// Demo accounts from the original storefront.
	a.AddUser("admin", "admin123", RoleAdmin, "Administrator")
	a.AddUser("customer", "cust123", RoleCustomer, "Customer")
	return a
}

func (a *MockAuthenticator) AddUser(username, password string, role Role, displayName string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	a.users[username] = mockUser{
		passwordHash: hash,
		role:         role,
		displayName:  displayName,
	}
}

func (a *MockAuthenticator) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if a.delay > 0 {
		select {
		case <-time.After(a.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	u, ok := a.users[username]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &User{
		Username:    username,
		DisplayName: u.displayName,
		Role:        u.role,
	}, nil
}
