package state

import (
	"github.com/vk/pmcore/internal/association"
	"github.com/vk/pmcore/internal/status"
)

// AssociateEntityToEntity links a project and a task, supplied in either
// order. Unknown ids are EntityNotFound; a self-pair or any pairing other
// than exactly one project and one task is InvalidAssociation; an existing
// link is DuplicatedAssociation and mutates nothing.
func (m *Manager) AssociateEntityToEntity(a, b string) status.Association {
	ea, ok := m.entities[a]
	if !ok {
		return status.EntityNotFound
	}
	eb, ok := m.entities[b]
	if !ok {
		return status.EntityNotFound
	}
	projectID, taskID, ok := association.NormalizePair(a, ea.Kind(), b, eb.Kind())
	if !ok {
		return status.InvalidAssociation
	}
	if !m.entityLinks.Link(projectID, taskID) {
		return status.DuplicatedAssociation
	}
	m.appendReport("Associated task %s with project %s", taskID, projectID)
	return status.NoError
}

// DisassociateEntityFromEntity removes a project/task link. It mirrors the
// associate validation and reports NoAssociation when the link is absent; it
// never creates a set.
func (m *Manager) DisassociateEntityFromEntity(a, b string) status.Association {
	ea, ok := m.entities[a]
	if !ok {
		return status.EntityNotFound
	}
	eb, ok := m.entities[b]
	if !ok {
		return status.EntityNotFound
	}
	projectID, taskID, ok := association.NormalizePair(a, ea.Kind(), b, eb.Kind())
	if !ok {
		return status.InvalidAssociation
	}
	if !m.entityLinks.Unlink(projectID, taskID) {
		return status.NoAssociation
	}
	m.appendReport("Disassociated task %s from project %s", taskID, projectID)
	return status.NoError
}

// EntityAssociations returns the task ids linked under a project id, sorted.
func (m *Manager) EntityAssociations(projectID string) []string {
	return m.entityLinks.Neighbors(projectID)
}

// AssociateUserToEntity links an entity to a user. Both sides must be
// registered; an existing link is DuplicatedAssociation.
func (m *Manager) AssociateUserToEntity(entityID, userID string) status.Association {
	if _, ok := m.users[userID]; !ok {
		return status.UserNotFound
	}
	if _, ok := m.entities[entityID]; !ok {
		return status.EntityNotFound
	}
	if !m.userLinks.Link(userID, entityID) {
		return status.DuplicatedAssociation
	}
	m.appendReport("Associated entity %s with user %s", entityID, userID)
	return status.NoError
}

// DisassociateUserFromEntity removes a user/entity link, reporting
// NoAssociation when it is absent.
func (m *Manager) DisassociateUserFromEntity(entityID, userID string) status.Association {
	if _, ok := m.users[userID]; !ok {
		return status.UserNotFound
	}
	if _, ok := m.entities[entityID]; !ok {
		return status.EntityNotFound
	}
	if !m.userLinks.Unlink(userID, entityID) {
		return status.NoAssociation
	}
	m.appendReport("Disassociated entity %s from user %s", entityID, userID)
	return status.NoError
}
