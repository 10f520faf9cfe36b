package user

import (
	"github.com/vk/pmcore/internal/entity"
	"github.com/vk/pmcore/internal/permission"
	"github.com/vk/pmcore/internal/status"
)

// Registry is the surface a user operation needs from the state holder. The
// concrete implementation lives in the state package; declaring the contract
// here keeps the dependency pointing one way.
type Registry interface {
	CreateEntity(kind entity.Kind, id, description string) status.State
	RemoveEntity(id string) status.State
	GetEntityProperty(id string, p entity.Property) (status.State, entity.Value)
	UpdateEntityProperty(id string, p entity.Property, v entity.Value) status.State
	AssociateEntityToEntity(a, b string) status.Association
	DisassociateEntityFromEntity(a, b string) status.Association
	AssociateUserToEntity(entityID, userID string) status.Association
	DisassociateUserFromEntity(entityID, userID string) status.Association
	ChangeUserProperty(userID string, p Property, v PropertyValue) status.State
	DeleteUser(id string) status.State
	GetUserReport(id string) (status.State, string)
	GetUserAssociations(id string) (status.State, string)
}

// The operations below are the permission-gated surface of a logged-in user.
// Each one checks the actor's permission first and fails closed without
// consulting the registry, then collapses the registry's status into the
// coarse Ok/Failed result reported to interactive callers.

// CreateEntity creates a project or task, gated by the matching create
// permission.
func (u *User) CreateEntity(reg Registry, kind entity.Kind, id, description string) status.OperationResult {
	if !u.Has(createPermFor(kind)) {
		return status.OperationFailed
	}
	return fromState(reg.CreateEntity(kind, id, description))
}

// ChangeEntityProperty updates one entity property, gated by the matching
// modify permission.
func (u *User) ChangeEntityProperty(reg Registry, kind entity.Kind, id string, p entity.Property, v entity.Value) status.OperationResult {
	if !u.Has(modifyPermFor(kind)) {
		return status.OperationFailed
	}
	return fromState(reg.UpdateEntityProperty(id, p, v))
}

// DeleteEntity removes an entity, gated by the matching delete permission.
func (u *User) DeleteEntity(reg Registry, kind entity.Kind, id string) status.OperationResult {
	if !u.Has(deletePermFor(kind)) {
		return status.OperationFailed
	}
	return fromState(reg.RemoveEntity(id))
}

// AssociateEntityToEntity links a project and a task, gated by project
// modification.
func (u *User) AssociateEntityToEntity(reg Registry, a, b string) status.OperationResult {
	if !u.Has(permission.ModifyProject) {
		return status.OperationFailed
	}
	return fromAssociation(reg.AssociateEntityToEntity(a, b))
}

// DissociateEntityFromEntity unlinks a project and a task, gated by project
// modification.
func (u *User) DissociateEntityFromEntity(reg Registry, a, b string) status.OperationResult {
	if !u.Has(permission.ModifyProject) {
		return status.OperationFailed
	}
	return fromAssociation(reg.DisassociateEntityFromEntity(a, b))
}

// GenerateEntityReport returns an entity's activity report.
func (u *User) GenerateEntityReport(reg Registry, id string) (status.OperationResult, string) {
	if !u.Has(permission.GenerateEntityReport) {
		return status.OperationFailed, ""
	}
	st, v := reg.GetEntityProperty(id, entity.PropertyReport)
	if st != status.Ok {
		return status.OperationFailed, ""
	}
	report, _ := v.AsString()
	return status.OperationOk, report
}

// GenerateUserReport returns another user's activity report.
func (u *User) GenerateUserReport(reg Registry, id string) (status.OperationResult, string) {
	if !u.Has(permission.GenerateUserReport) {
		return status.OperationFailed, ""
	}
	st, report := reg.GetUserReport(id)
	if st != status.Ok {
		return status.OperationFailed, ""
	}
	return status.OperationOk, report
}

// GetUserAssociations renders the entity ids associated with a user, one
// line per entity.
func (u *User) GetUserAssociations(reg Registry, id string) (status.OperationResult, string) {
	if !u.Has(permission.GenerateUserReport) {
		return status.OperationFailed, ""
	}
	st, view := reg.GetUserAssociations(id)
	if st != status.Ok {
		return status.OperationFailed, ""
	}
	return status.OperationOk, view
}

// ChangeUserProperty renames a user or adjusts their permission set, gated
// by user modification.
func (u *User) ChangeUserProperty(reg Registry, userID string, p Property, v PropertyValue) status.OperationResult {
	if !u.Has(permission.ModifyUser) {
		return status.OperationFailed
	}
	return fromState(reg.ChangeUserProperty(userID, p, v))
}

// DeleteUser removes a registered user. Deleting the acting user's own id is
// rejected outright so a session can never remove itself.
func (u *User) DeleteUser(reg Registry, id string) status.OperationResult {
	if !u.Has(permission.DeleteUser) {
		return status.OperationFailed
	}
	if id == u.id {
		return status.OperationFailed
	}
	return fromState(reg.DeleteUser(id))
}

// AssociateUserWithEntity links a user to an entity, gated by user
// modification.
func (u *User) AssociateUserWithEntity(reg Registry, userID, entityID string) status.OperationResult {
	if !u.Has(permission.ModifyUser) {
		return status.OperationFailed
	}
	return fromAssociation(reg.AssociateUserToEntity(entityID, userID))
}

// DisassociateUserWithEntity unlinks a user from an entity, gated by user
// modification.
func (u *User) DisassociateUserWithEntity(reg Registry, userID, entityID string) status.OperationResult {
	if !u.Has(permission.ModifyUser) {
		return status.OperationFailed
	}
	return fromAssociation(reg.DisassociateUserFromEntity(entityID, userID))
}

func createPermFor(kind entity.Kind) permission.Permission {
	if kind == entity.Project {
		return permission.CreateProject
	}
	return permission.CreateTask
}

func modifyPermFor(kind entity.Kind) permission.Permission {
	if kind == entity.Project {
		return permission.ModifyProject
	}
	return permission.ModifyTask
}

func deletePermFor(kind entity.Kind) permission.Permission {
	if kind == entity.Project {
		return permission.DeleteProject
	}
	return permission.DeleteTask
}

func fromState(s status.State) status.OperationResult {
	if s == status.Ok {
		return status.OperationOk
	}
	return status.OperationFailed
}

func fromAssociation(a status.Association) status.OperationResult {
	if a == status.NoError {
		return status.OperationOk
	}
	return status.OperationFailed
}
