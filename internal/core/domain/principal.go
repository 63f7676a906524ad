package domain

// Principal is the authorization context resolved for one request. It lives
// only as long as the request does.
type Principal struct {
	AccountID int64
	Role      Role
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
