// Package policy holds the authorization rules shared by every delete and
// moderation path.
package policy

// Actor is the caller of an operation.
type Actor struct {
	ID      uint
	IsAdmin bool
}

// Owned is anything with a single owning user.
type Owned interface {
	OwnerID() uint
}

// CanDelete allows the owner of r or any admin.
func CanDelete(a Actor, r Owned) bool {
	if a.IsAdmin {
		return true
	}
	return a.ID != 0 && a.ID == r.OwnerID()
}

// CanModerate allows admins only.
func CanModerate(a Actor) bool {
	return a.IsAdmin
}
