package model

// Principal is the identity and role resolved from a verified token for the
// duration of one request. It is derived, never persisted.
type Principal struct {
	UserID int64
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess reports whether the principal may act on a resource owned by
// ownerID: admins always, everyone else only on their own resources.
func (p Principal) CanAccess(ownerID int64) bool {
	if p.IsAdmin() {
		return true
	}
	return p.UserID == ownerID
}

// OwnerScope is the owner filter applied to every repository call: nil for
// admins (unscoped), the principal's own id for everyone else. A cross-owner
// lookup therefore comes back empty and renders as 404, never 403, so a
// non-owner cannot confirm that someone else's resource exists.
func (p Principal) OwnerScope() *int64 {
	if p.IsAdmin() {
		return nil
	}
	id := p.UserID
	return &id
}
