package domain

// RoleID identifies an authorization tier. Role rows are static reference
// data seeded by migration; the ids below must match the seed.
type RoleID int

const (
	// RoleAdmin is the administrator role. Admin-scoped mutations and
	// views require it.
	RoleAdmin RoleID = 1

	// RoleUser is the default role assigned at registration.
	RoleUser RoleID = 2
)

// Role represents a row of the roles reference table.
type Role struct {
	ID   RoleID `json:"id"`
	Name string `json:"role_name"`
}

// RequireRole checks that the user holds the required role. It is a pure
// comparison with no storage access; callers gate admin-scoped operations
// with it before doing any work.
//
// Returns ErrForbidden if the user's role does not match.
func RequireRole(u *User, required RoleID) error {
	if u == nil || u.RoleID != required {
		return ErrForbidden
	}
	return nil
}
