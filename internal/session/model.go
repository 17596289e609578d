package session

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Window is the fixed validity span of a session, counted from login.
// Sessions are not sliding: a validity check never refreshes the start.
const Window = 7 * 24 * time.Hour

type User struct {
	Username    string
	DisplayName string
	Role        Role
}

type Session struct {
	Role        Role      `json:"role"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"timestamp"`
}

// ValidAt reports whether the session window still covers the given time.
func (s *Session) ValidAt(now time.Time) bool {
	return now.Before(s.CreatedAt.Add(Window))
}
