package models

// Session is the authenticated principal decoded from the session cookie.
type Session struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}

// IsAdmin reports whether the session carries the ADMIN role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// HasRole reports whether the session carries one of roles.
func (s *Session) HasRole(roles ...Role) bool {
	if s == nil {
		return false
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// Actor identifies who performed an action, with request metadata for the audit log.
type Actor struct {
	UserID    string
	Email     string
	Role      Role
	IPAddress string
	UserAgent string
}

// IsAdmin reports whether the actor is an administrator.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
