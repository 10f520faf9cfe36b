package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pmcore/internal/permission"
	"github.com/vk/pmcore/internal/status"
	"github.com/vk/pmcore/internal/user"
)

func TestUserRegister(t *testing.T) {
	m := newTestManager(t)

	assert.Equal(t, status.Forbidden, m.UserRegister("any", nil))

	admin := user.NewAdmin("admin")
	require.Equal(t, status.Ok, m.UserRegister("admin", admin))
	assert.Same(t, admin, m.CurrentUser())

	assert.Equal(t, status.AlreadyExists, m.UserRegister("admin", user.NewTester("admin")))
}

func TestUserRegisterRenamesToRegistrationID(t *testing.T) {
	m := newTestManager(t)

	u := user.NewDeveloper("old-name")
	require.Equal(t, status.Ok, m.UserRegister("dev", u))
	assert.Equal(t, "dev", u.ID())

	got, ok := m.User("dev")
	require.True(t, ok)
	assert.Same(t, u, got)
}

func TestUserRegisterDefaultsToOwnID(t *testing.T) {
	m := newTestManager(t)

	u := user.NewTester("tester")
	require.Equal(t, status.Ok, m.UserRegister("", u))

	_, ok := m.User("tester")
	assert.True(t, ok)
}

func TestUserLoginLogout(t *testing.T) {
	m := newTestManager(t)
	require.Equal(t, status.Ok, m.UserRegister("admin", user.NewAdmin("admin")))
	require.Equal(t, status.Ok, m.UserLogout())
	require.Nil(t, m.CurrentUser())

	assert.Equal(t, status.NotFound, m.UserLogout())
	assert.Equal(t, status.NotFound, m.UserLogin("ghost"))

	assert.Equal(t, status.Ok, m.UserLogin("admin"))
	require.NotNil(t, m.CurrentUser())
	assert.Equal(t, "admin", m.CurrentUser().ID())
}

func TestDeleteUser(t *testing.T) {
	m := newTestManager(t)
	require.Equal(t, status.Ok, m.UserRegister("admin", user.NewAdmin("admin")))
	require.Equal(t, status.Ok, m.UserRegister("dev", user.NewDeveloper("dev")))

	assert.Equal(t, status.NotFound, m.DeleteUser("ghost"))
	assert.Equal(t, status.Ok, m.DeleteUser("admin"))
	_, ok := m.User("admin")
	assert.False(t, ok)

	// dev is the current session; deleting it must also end the session.
	assert.Equal(t, status.Ok, m.DeleteUser("dev"))
	assert.Nil(t, m.CurrentUser())
}

func TestChangeUserPropertyRename(t *testing.T) {
	m := newTestManager(t)
	require.Equal(t, status.Ok, m.UserRegister("dev", user.NewDeveloper("dev")))
	require.Equal(t, status.Ok, m.UserRegister("tester", user.NewTester("tester")))

	assert.Equal(t, status.NotFound,
		m.ChangeUserProperty("ghost", user.PropertyID, user.IDValue("new")))
	assert.Equal(t, status.Forbidden,
		m.ChangeUserProperty("dev", user.PropertyID, user.PropertyValue{}))
	assert.Equal(t, status.Forbidden,
		m.ChangeUserProperty("dev", user.PropertyID, user.PermissionValue(permission.ModifyTask)))
	assert.Equal(t, status.AlreadyExists,
		m.ChangeUserProperty("dev", user.PropertyID, user.IDValue("dev")))
	assert.Equal(t, status.AlreadyExists,
		m.ChangeUserProperty("dev", user.PropertyID, user.IDValue("tester")))

	require.Equal(t, status.Ok,
		m.ChangeUserProperty("dev", user.PropertyID, user.IDValue("dev2")))
	_, ok := m.User("dev")
	assert.False(t, ok)
	renamed, ok := m.User("dev2")
	require.True(t, ok)
	assert.Equal(t, "dev2", renamed.ID())
}

func TestChangeUserPropertyPermissions(t *testing.T) {
	m := newTestManager(t)
	require.Equal(t, status.Ok, m.UserRegister("tester", user.NewTester("tester")))

	assert.Equal(t, status.Ok,
		m.ChangeUserProperty("tester", user.PropertyAddPermission, user.PermissionValue(permission.CreateTask)))
	assert.Equal(t, status.AlreadyExists,
		m.ChangeUserProperty("tester", user.PropertyAddPermission, user.PermissionValue(permission.CreateTask)))

	assert.Equal(t, status.Ok,
		m.ChangeUserProperty("tester", user.PropertyRemovePermission, user.PermissionValue(permission.CreateTask)))
	assert.Equal(t, status.NotFound,
		m.ChangeUserProperty("tester", user.PropertyRemovePermission, user.PermissionValue(permission.CreateTask)))
}

func TestGetUserReport(t *testing.T) {
	m := newTestManager(t)
	require.Equal(t, status.Ok, m.UserRegister("dev", user.NewDeveloper("dev")))

	st, report := m.GetUserReport("dev")
	require.Equal(t, status.Ok, st)
	assert.Contains(t, report, "[UserLog:dev]")
	assert.Contains(t, report, "created with role Developer")

	st, _ = m.GetUserReport("ghost")
	assert.Equal(t, status.NotFound, st)
}
