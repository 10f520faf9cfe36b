// Package state owns all mutable domain state: the entity and user
// collections, both association graphs, the current session, and the
// cumulative report. Every public operation returns a status code; errors
// are reserved for persistence I/O at startup and shutdown.
//
// The Manager is built for single-threaded, synchronous use. Only the
// package-level default instance (singleton.go) guards construction with a
// lock; the collections themselves are unsynchronized by contract.
package state

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/vk/pmcore/internal/association"
	"github.com/vk/pmcore/internal/ctxlog"
	"github.com/vk/pmcore/internal/entity"
	"github.com/vk/pmcore/internal/persistence"
	"github.com/vk/pmcore/internal/status"
	"github.com/vk/pmcore/internal/user"
)

// Manager is the state registry. Construct it with New and pass it by
// reference to collaborators; the package-level Default exists for the
// console surface and test harnesses.
type Manager struct {
	logger *slog.Logger
	store  *persistence.Store

	entities    map[string]*entity.Entity
	users       map[string]*user.User
	entityLinks *association.Graph // project id -> task ids
	userLinks   *association.Graph // user id -> entity ids

	current *user.User
	report  strings.Builder
}

// New constructs a manager, loading persisted state through store when one
// is provided. A nil store yields an empty, memory-only registry.
func New(ctx context.Context, store *persistence.Store) (*Manager, error) {
	m := &Manager{
		logger:      ctxlog.FromContext(ctx),
		store:       store,
		entities:    make(map[string]*entity.Entity),
		users:       make(map[string]*user.User),
		entityLinks: association.New(),
		userLinks:   association.New(),
	}
	if store == nil {
		return m, nil
	}

	entities, users, entityLinks, userLinks, err := store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted state: %w", err)
	}
	if entities == nil || users == nil || entityLinks == nil || userLinks == nil {
		return nil, fmt.Errorf("persistence returned a nil collection")
	}
	m.entities = entities
	m.users = users
	m.entityLinks = association.Restore(entityLinks)
	m.userLinks = association.Restore(userLinks)
	m.logger.Debug("State manager constructed from persisted state.",
		"entities", len(entities), "users", len(users))
	return m, nil
}

// SaveAll flushes all four collections through the persistence store. With
// no store configured it is a no-op.
func (m *Manager) SaveAll(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	return m.store.SaveAll(ctx, m.entities, m.users,
		m.entityLinks.Snapshot(), m.userLinks.Snapshot())
}

// CreateEntity builds and stores a new entity. A taken id is AlreadyExists;
// a factory rejection (empty id) is Forbidden.
func (m *Manager) CreateEntity(kind entity.Kind, id, description string) status.State {
	if _, taken := m.entities[id]; taken {
		m.logger.Debug("Entity creation rejected, id already exists.", "id", id)
		return status.AlreadyExists
	}
	e, err := entity.New(kind, id, description)
	if err != nil {
		m.logger.Debug("Entity creation rejected by factory.", "id", id, "error", err)
		return status.Forbidden
	}
	m.entities[id] = e
	m.appendReport("Created %s %s", kind, id)
	return status.Ok
}

// RemoveEntity deletes an entity by id. Association entries pointing at the
// removed id are left in place; they surface as not-found on next access.
func (m *Manager) RemoveEntity(id string) status.State {
	if _, ok := m.entities[id]; !ok {
		return status.NotFound
	}
	delete(m.entities, id)
	m.appendReport("Removed entity %s", id)
	return status.Ok
}

// Entity returns the stored record for display purposes.
func (m *Manager) Entity(id string) (*entity.Entity, bool) {
	e, ok := m.entities[id]
	return e, ok
}

// EntityIDs returns all registered entity ids, sorted.
func (m *Manager) EntityIDs() []string {
	ids := lo.Keys(m.entities)
	sort.Strings(ids)
	return ids
}

// GetEntityProperty reads one property of an entity.
func (m *Manager) GetEntityProperty(id string, p entity.Property) (status.State, entity.Value) {
	e, ok := m.entities[id]
	if !ok {
		return status.NotFound, entity.Value{}
	}
	return status.Ok, e.Get(p)
}

// UpdateEntityProperty writes one property of an entity through the typed
// dispatcher. The entity itself decides Forbidden and the same-status
// AlreadyExists no-op.
func (m *Manager) UpdateEntityProperty(id string, p entity.Property, v entity.Value) status.State {
	e, ok := m.entities[id]
	if !ok {
		return status.NotFound
	}
	m.appendReport("Attempting to update entity id: %s with %s", id, v)
	st := e.Set(p, v)
	if st != status.Ok {
		m.logger.Debug("Entity property update rejected.", "id", id, "property", p.String(), "status", st.String())
	}
	return st
}

// Report returns the cumulative textual report of registry activity.
func (m *Manager) Report() string {
	return m.report.String()
}

func (m *Manager) appendReport(format string, args ...any) {
	fmt.Fprintf(&m.report, "[StateLog] %s : %s\n",
		time.Now().Format("2006-01-02 15:04:05"), fmt.Sprintf(format, args...))
}
