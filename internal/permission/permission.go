// Package permission defines the closed permission vocabulary and the
// permission sets granted to each user role.
package permission

// Permission is a single capability flag a user may hold.
type Permission int

const (
	CreateProject Permission = iota
	ModifyProject
	DeleteProject
	CreateTask
	ModifyTask
	DeleteTask
	GenerateEntityReport
	GenerateUserReport
	ModifyUser
	DeleteUser
)

var names = [...]string{
	"CanCreateProject",
	"CanModifyProject",
	"CanDeleteProject",
	"CanCreateTask",
	"CanModifyTask",
	"CanDeleteTask",
	"CanGenerateEntityReport",
	"CanGenerateUserReport",
	"CanModifyUser",
	"CanDeleteUser",
}

func (p Permission) String() string {
	if p < 0 || int(p) >= len(names) {
		return "Unknown"
	}
	return names[p]
}

// Parse maps a symbolic permission name back to its Permission. The names
// are the exact strings produced by String, as written by persistence.
func Parse(s string) (Permission, bool) {
	for i, name := range names {
		if name == s {
			return Permission(i), true
		}
	}
	return CreateProject, false
}

// All returns every permission in the vocabulary.
func All() []Permission {
	out := make([]Permission, len(names))
	for i := range out {
		out[i] = Permission(i)
	}
	return out
}

// Set is an unordered collection of permissions.
type Set map[Permission]struct{}

// NewSet builds a Set from the given permissions.
func NewSet(perms ...Permission) Set {
	s := make(Set, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether the set contains p. An empty set fails everything
// closed.
func (s Set) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Add inserts p and reports whether the set changed.
func (s Set) Add(p Permission) bool {
	if s.Has(p) {
		return false
	}
	s[p] = struct{}{}
	return true
}

// Remove deletes p and reports whether the set changed.
func (s Set) Remove(p Permission) bool {
	if !s.Has(p) {
		return false
	}
	delete(s, p)
	return true
}
