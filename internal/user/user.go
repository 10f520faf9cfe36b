// Package user defines the permission-bearing actor registered with the
// state registry, its role constructors, and the permission-gated operations
// a logged-in user may perform against the registry.
package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vk/pmcore/internal/permission"
)

// Role tags the constructor a user was built with. Persistence stores the
// tag and replays the matching constructor on reload.
type Role int

const (
	RoleAdmin Role = iota
	RoleProjectManager
	RoleDeveloper
	RoleTester
)

var roleNames = [...]string{
	"Admin",
	"ProjectManager",
	"Developer",
	"Tester",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "Unknown"
	}
	return roleNames[r]
}

// ParseRole maps a role tag back to its Role.
func ParseRole(s string) (Role, bool) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), true
		}
	}
	return RoleAdmin, false
}

// User is an actor with an id, a permission set, and an append-only activity
// log. The permission set may be empty, in which case every gated operation
// fails closed.
type User struct {
	id    string
	role  Role
	perms permission.Set
	log   []string
}

// New creates a user with an explicit permission set. An empty id is
// replaced with a generated one.
func New(id string, role Role, perms permission.Set) *User {
	if id == "" {
		id = uuid.NewString()
	}
	if perms == nil {
		perms = permission.NewSet()
	}
	u := &User{id: id, role: role, perms: perms}
	u.appendLog(fmt.Sprintf("User %s created with role %s", id, role))
	return u
}

// NewAdmin grants the full permission vocabulary.
func NewAdmin(id string) *User {
	return New(id, RoleAdmin, permission.NewSet(permission.All()...))
}

// NewProjectManager grants the project and task lifecycle plus entity
// reporting, but no user administration.
func NewProjectManager(id string) *User {
	return New(id, RoleProjectManager, permission.NewSet(
		permission.CreateProject,
		permission.ModifyProject,
		permission.DeleteProject,
		permission.CreateTask,
		permission.ModifyTask,
		permission.DeleteTask,
		permission.GenerateEntityReport,
	))
}

// NewDeveloper grants the task lifecycle plus entity reporting.
func NewDeveloper(id string) *User {
	return New(id, RoleDeveloper, permission.NewSet(
		permission.CreateTask,
		permission.ModifyTask,
		permission.DeleteTask,
		permission.GenerateEntityReport,
	))
}

// NewTester grants task modification and entity reporting only.
func NewTester(id string) *User {
	return New(id, RoleTester, permission.NewSet(
		permission.ModifyTask,
		permission.GenerateEntityReport,
	))
}

// NewForRole replays the constructor matching a persisted role tag.
func NewForRole(role Role, id string) *User {
	switch role {
	case RoleProjectManager:
		return NewProjectManager(id)
	case RoleDeveloper:
		return NewDeveloper(id)
	case RoleTester:
		return NewTester(id)
	default:
		return NewAdmin(id)
	}
}

func (u *User) ID() string { return u.id }
func (u *User) Role() Role { return u.role }

// Has reports whether the user holds the given permission.
func (u *User) Has(p permission.Permission) bool {
	return u.perms.Has(p)
}

// Permissions returns the user's permissions as symbolic names, in the
// vocabulary's declaration order.
func (u *User) Permissions() []string {
	var out []string
	for _, p := range permission.All() {
		if u.perms.Has(p) {
			out = append(out, p.String())
		}
	}
	return out
}

// Rename changes the user's id. The registry owns id uniqueness and re-keys
// its collections around this call.
func (u *User) Rename(newID string) {
	u.appendLog(fmt.Sprintf("Changed user id from %s to %s", u.id, newID))
	u.id = newID
}

// Grant adds a permission; it reports false when the user already holds it.
func (u *User) Grant(p permission.Permission) bool {
	if !u.perms.Add(p) {
		return false
	}
	u.appendLog(fmt.Sprintf("Granted permission %s", p))
	return true
}

// Revoke removes a permission; it reports false when the user lacks it.
func (u *User) Revoke(p permission.Permission) bool {
	if !u.perms.Remove(p) {
		return false
	}
	u.appendLog(fmt.Sprintf("Revoked permission %s", p))
	return true
}

// ActivityLog returns a copy of the append-only audit lines.
func (u *User) ActivityLog() []string {
	out := make([]string, len(u.log))
	copy(out, u.log)
	return out
}

// Report renders the activity log as one human-readable block.
func (u *User) Report() string {
	return strings.Join(u.log, "\n")
}

func (u *User) appendLog(message string) {
	u.log = append(u.log, fmt.Sprintf("[UserLog:%s] %s : %s", u.id, time.Now().Format("2006-01-02 15:04:05"), message))
}
