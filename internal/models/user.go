package models

import "fmt"

// Role strings a user may carry. The set is closed: any other value is
// rejected by AddRole and by the role-edit form.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User represents an application account. Email is the login key.
// The role list is a deduplicated set drawn from RoleUser and RoleAdmin.
type User struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"` // Never serialize the hash
	Roles        []string `json:"roles"`
}

// ValidRole reports whether role belongs to the fixed role set.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin returns true if the user carries ROLE_ADMIN.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// AddRole adds a role to the user's set. Adding an already-present role
// is a no-op; a role outside the fixed set is an error.
func (u *User) AddRole(role string) error {
	if !ValidRole(role) {
		return fmt.Errorf("invalid role %q: must be %s or %s", role, RoleUser, RoleAdmin)
	}
	if u.HasRole(role) {
		return nil
	}
	u.Roles = append(u.Roles, role)
	return nil
}

// SetRoles replaces the user's role set, dropping duplicates and
// preserving first-seen order. Roles outside the fixed set are an error.
func (u *User) SetRoles(roles []string) error {
	deduped := make([]string, 0, len(roles))
	seen := make(map[string]bool, len(roles))
	for _, r := range roles {
		if !ValidRole(r) {
			return fmt.Errorf("invalid role %q: must be %s or %s", r, RoleUser, RoleAdmin)
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		deduped = append(deduped, r)
	}
	u.Roles = deduped
	return nil
}
