package state

import (
	"strings"

	"github.com/vk/pmcore/internal/status"
	"github.com/vk/pmcore/internal/user"
)

// UserRegister stores a user under id and makes it the current session. A
// taken id is AlreadyExists; a nil user is Forbidden. When the supplied id
// differs from the user's own, the user is renamed to the registration id.
func (m *Manager) UserRegister(id string, u *user.User) status.State {
	if u == nil {
		return status.Forbidden
	}
	if id == "" {
		id = u.ID()
	}
	if _, taken := m.users[id]; taken {
		return status.AlreadyExists
	}
	if u.ID() != id {
		u.Rename(id)
	}
	m.users[id] = u
	m.current = u
	m.appendReport("Registered user %s with role %s", id, u.Role())
	return status.Ok
}

// UserLogin makes a registered user the current session.
func (m *Manager) UserLogin(id string) status.State {
	u, ok := m.users[id]
	if !ok {
		return status.NotFound
	}
	m.current = u
	m.appendReport("User %s logged in", id)
	return status.Ok
}

// UserLogout clears the current session. With no session active it is
// NotFound.
func (m *Manager) UserLogout() status.State {
	if m.current == nil {
		return status.NotFound
	}
	m.appendReport("User %s logged out", m.current.ID())
	m.current = nil
	return status.Ok
}

// CurrentUser returns the logged-in user, or nil when no session is active.
func (m *Manager) CurrentUser() *user.User {
	return m.current
}

// DeleteUser removes a registered user. Deleting the session's user also
// ends the session so the pointer never dangles. The self-deletion guard
// lives on the user operation, not here.
func (m *Manager) DeleteUser(id string) status.State {
	u, ok := m.users[id]
	if !ok {
		return status.NotFound
	}
	delete(m.users, id)
	if m.current == u {
		m.current = nil
	}
	m.appendReport("Deleted user %s", id)
	return status.Ok
}

// User returns the stored user record.
func (m *Manager) User(id string) (*user.User, bool) {
	u, ok := m.users[id]
	return u, ok
}

// ChangeUserProperty renames a user or adjusts their permission set. Type
// mismatches and empty payloads are Forbidden; renaming onto a taken id is
// AlreadyExists; granting a held permission is AlreadyExists and revoking an
// absent one is NotFound.
func (m *Manager) ChangeUserProperty(userID string, p user.Property, v user.PropertyValue) status.State {
	u, ok := m.users[userID]
	if !ok {
		return status.NotFound
	}
	if v.IsZero() || v.Kind() != p.ValueKind() {
		return status.Forbidden
	}

	switch p {
	case user.PropertyID:
		newID, _ := v.AsID()
		if newID == "" {
			return status.Forbidden
		}
		if newID == userID {
			return status.AlreadyExists
		}
		if _, taken := m.users[newID]; taken {
			return status.AlreadyExists
		}
		delete(m.users, userID)
		u.Rename(newID)
		m.users[newID] = u
		m.appendReport("Renamed user %s to %s", userID, newID)
	case user.PropertyAddPermission:
		perm, _ := v.AsPermission()
		if !u.Grant(perm) {
			return status.AlreadyExists
		}
		m.appendReport("Granted %s to user %s", perm, userID)
	case user.PropertyRemovePermission:
		perm, _ := v.AsPermission()
		if !u.Revoke(perm) {
			return status.NotFound
		}
		m.appendReport("Revoked %s from user %s", perm, userID)
	default:
		return status.Forbidden
	}
	return status.Ok
}

// GetUserReport returns a user's activity report.
func (m *Manager) GetUserReport(id string) (status.State, string) {
	u, ok := m.users[id]
	if !ok {
		return status.NotFound, ""
	}
	return status.Ok, u.Report()
}

// GetUserAssociations renders the entity ids associated with a user, one id
// per line. A user with no associations yields Ok and an empty view.
func (m *Manager) GetUserAssociations(id string) (status.State, string) {
	if _, ok := m.users[id]; !ok {
		return status.NotFound, ""
	}
	return status.Ok, strings.Join(m.userLinks.Neighbors(id), "\n")
}
