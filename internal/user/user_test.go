package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pmcore/internal/entity"
	"github.com/vk/pmcore/internal/permission"
	"github.com/vk/pmcore/internal/status"
)

func TestRoleConstructors(t *testing.T) {
	admin := NewAdmin("admin")
	for _, p := range permission.All() {
		assert.True(t, admin.Has(p), p.String())
	}

	pm := NewProjectManager("pm")
	assert.True(t, pm.Has(permission.CreateProject))
	assert.True(t, pm.Has(permission.DeleteTask))
	assert.False(t, pm.Has(permission.ModifyUser))
	assert.False(t, pm.Has(permission.DeleteUser))

	dev := NewDeveloper("dev")
	assert.True(t, dev.Has(permission.CreateTask))
	assert.False(t, dev.Has(permission.CreateProject))
	assert.False(t, dev.Has(permission.DeleteProject))

	tester := NewTester("tester")
	assert.True(t, tester.Has(permission.ModifyTask))
	assert.True(t, tester.Has(permission.GenerateEntityReport))
	assert.False(t, tester.Has(permission.CreateTask))
}

func TestNewGeneratesIDWhenEmpty(t *testing.T) {
	u := NewAdmin("")
	assert.NotEmpty(t, u.ID())

	other := NewAdmin("")
	assert.NotEqual(t, u.ID(), other.ID())
}

func TestNewForRoleRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleProjectManager, RoleDeveloper, RoleTester} {
		parsed, ok := ParseRole(role.String())
		require.True(t, ok, role.String())
		assert.Equal(t, role, parsed)

		u := NewForRole(role, "someone")
		assert.Equal(t, role, u.Role())
		assert.Equal(t, "someone", u.ID())
	}
}

func TestGrantRevokeLog(t *testing.T) {
	u := NewTester("tester")

	require.True(t, u.Grant(permission.CreateTask))
	assert.False(t, u.Grant(permission.CreateTask))
	assert.Contains(t, u.Report(), "Granted permission CanCreateTask")

	require.True(t, u.Revoke(permission.CreateTask))
	assert.False(t, u.Revoke(permission.CreateTask))
	assert.Contains(t, u.Report(), "Revoked permission CanCreateTask")
}

func TestPermissionsSortedNames(t *testing.T) {
	dev := NewDeveloper("dev")
	assert.Equal(t, []string{
		"CanCreateTask",
		"CanModifyTask",
		"CanDeleteTask",
		"CanGenerateEntityReport",
	}, dev.Permissions())
}

// fakeRegistry records which operations reached the registry so tests can
// prove permission failures short-circuit before it is consulted.
type fakeRegistry struct {
	calls []string

	stateResult  status.State
	assocResult  status.Association
	reportResult string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{stateResult: status.Ok, assocResult: status.NoError, reportResult: "report"}
}

func (f *fakeRegistry) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeRegistry) CreateEntity(entity.Kind, string, string) status.State {
	f.record("CreateEntity")
	return f.stateResult
}

func (f *fakeRegistry) RemoveEntity(string) status.State {
	f.record("RemoveEntity")
	return f.stateResult
}

func (f *fakeRegistry) GetEntityProperty(string, entity.Property) (status.State, entity.Value) {
	f.record("GetEntityProperty")
	return f.stateResult, entity.StringValue(f.reportResult)
}

func (f *fakeRegistry) UpdateEntityProperty(string, entity.Property, entity.Value) status.State {
	f.record("UpdateEntityProperty")
	return f.stateResult
}

func (f *fakeRegistry) AssociateEntityToEntity(string, string) status.Association {
	f.record("AssociateEntityToEntity")
	return f.assocResult
}

func (f *fakeRegistry) DisassociateEntityFromEntity(string, string) status.Association {
	f.record("DisassociateEntityFromEntity")
	return f.assocResult
}

func (f *fakeRegistry) AssociateUserToEntity(string, string) status.Association {
	f.record("AssociateUserToEntity")
	return f.assocResult
}

func (f *fakeRegistry) DisassociateUserFromEntity(string, string) status.Association {
	f.record("DisassociateUserFromEntity")
	return f.assocResult
}

func (f *fakeRegistry) ChangeUserProperty(string, Property, PropertyValue) status.State {
	f.record("ChangeUserProperty")
	return f.stateResult
}

func (f *fakeRegistry) DeleteUser(string) status.State {
	f.record("DeleteUser")
	return f.stateResult
}

func (f *fakeRegistry) GetUserReport(string) (status.State, string) {
	f.record("GetUserReport")
	return f.stateResult, f.reportResult
}

func (f *fakeRegistry) GetUserAssociations(string) (status.State, string) {
	f.record("GetUserAssociations")
	return f.stateResult, f.reportResult
}

func TestPermissionFailureShortCircuits(t *testing.T) {
	reg := newFakeRegistry()
	bare := New("bare", RoleTester, permission.NewSet())

	assert.Equal(t, status.OperationFailed, bare.CreateEntity(reg, entity.Project, "proj1", ""))
	assert.Equal(t, status.OperationFailed, bare.DeleteEntity(reg, entity.Task, "task1"))
	assert.Equal(t, status.OperationFailed, bare.AssociateEntityToEntity(reg, "proj1", "task1"))
	assert.Equal(t, status.OperationFailed, bare.DeleteUser(reg, "other"))

	res, report := bare.GenerateEntityReport(reg, "proj1")
	assert.Equal(t, status.OperationFailed, res)
	assert.Empty(t, report)

	assert.Empty(t, reg.calls, "the registry must not be consulted without permission")
}

func TestGatedOperationsDelegate(t *testing.T) {
	reg := newFakeRegistry()
	admin := NewAdmin("admin")

	assert.Equal(t, status.OperationOk, admin.CreateEntity(reg, entity.Project, "proj1", "desc"))
	assert.Equal(t, status.OperationOk, admin.ChangeEntityProperty(reg, entity.Project, "proj1",
		entity.PropertyDescription, entity.StringValue("new")))
	assert.Equal(t, status.OperationOk, admin.AssociateEntityToEntity(reg, "proj1", "task1"))
	assert.Equal(t, status.OperationOk, admin.AssociateUserWithEntity(reg, "dev", "proj1"))

	res, report := admin.GenerateUserReport(reg, "dev")
	assert.Equal(t, status.OperationOk, res)
	assert.Equal(t, "report", report)

	assert.Equal(t, []string{
		"CreateEntity",
		"UpdateEntityProperty",
		"AssociateEntityToEntity",
		"AssociateUserToEntity",
		"GetUserReport",
	}, reg.calls)
}

func TestGatedOperationsTranslateFailures(t *testing.T) {
	reg := newFakeRegistry()
	reg.stateResult = status.NotFound
	reg.assocResult = status.DuplicatedAssociation
	admin := NewAdmin("admin")

	assert.Equal(t, status.OperationFailed, admin.DeleteEntity(reg, entity.Task, "ghost"))
	assert.Equal(t, status.OperationFailed, admin.AssociateEntityToEntity(reg, "proj1", "task1"))

	res, _ := admin.GenerateUserReport(reg, "ghost")
	assert.Equal(t, status.OperationFailed, res)
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	reg := newFakeRegistry()
	admin := NewAdmin("admin")

	assert.Equal(t, status.OperationFailed, admin.DeleteUser(reg, "admin"))
	assert.Empty(t, reg.calls, "self-deletion must not reach the registry")

	assert.Equal(t, status.OperationOk, admin.DeleteUser(reg, "other"))
	assert.Equal(t, []string{"DeleteUser"}, reg.calls)
}
