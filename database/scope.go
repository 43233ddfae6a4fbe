package database

// Scope is the authorization filter applied to every note query. The
// default path restricts rows to a single owner; the elevated variant is
// a separate, explicitly constructed value so ownership checks are never
// a runtime branch scattered across handlers.
type Scope struct {
	ownerID string
	admin   bool
}

// OwnedBy scopes queries to notes owned by the given user.
func OwnedBy(userID string) Scope {
	return Scope{ownerID: userID}
}

// AdminScope bypasses the owner filter. Callers must gate this behind an
// explicit privilege check.
func AdminScope() Scope {
	return Scope{admin: true}
}

// predicate returns a SQL fragment (without leading AND) and its
// arguments. The admin scope matches every row.
func (s Scope) predicate() (string, []interface{}) {
	if s.admin {
		return "1=1", nil
	}
	return "user_id = ?", []interface{}{s.ownerID}
}
