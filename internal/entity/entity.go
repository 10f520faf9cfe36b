// Package entity defines the project/task record tracked by the registry and
// the typed property dispatcher that guards every mutation of it.
package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vk/pmcore/internal/status"
)

// ErrEmptyID is returned by New when the caller supplies no id.
var ErrEmptyID = errors.New("entity id must not be empty")

// Entity is a single project or task. The id and kind are fixed at
// construction; every other field changes only through Set, which validates
// the incoming value and records the change in the activity log.
type Entity struct {
	id          string
	kind        Kind
	description string
	status      Status
	priority    Priority
	created     time.Time
	started     time.Time // zero until the entity moves to InProgress
	finished    time.Time // zero until the entity moves to Done
	log         []string
}

// New creates an entity in the New status with Medium priority. It rejects
// an empty id; that is the only construction-time validation.
func New(kind Kind, id, description string) (*Entity, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	e := &Entity{
		id:          id,
		kind:        kind,
		description: description,
		status:      StatusNew,
		priority:    PriorityMedium,
		created:     time.Now(),
	}
	e.appendLog(fmt.Sprintf("%s %s created with description: %s", kind, id, orNone(description)))
	return e, nil
}

// Restore rebuilds an entity from persisted fields. The activity log is not
// durable, so the restored entity starts with a fresh one.
func Restore(kind Kind, id, description string, st Status, pr Priority, created, started, finished time.Time) (*Entity, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	e := &Entity{
		id:          id,
		kind:        kind,
		description: description,
		status:      st,
		priority:    pr,
		created:     created,
		started:     started,
		finished:    finished,
	}
	e.appendLog(fmt.Sprintf("%s %s restored from storage", kind, id))
	return e, nil
}

func (e *Entity) ID() string              { return e.id }
func (e *Entity) Kind() Kind              { return e.kind }
func (e *Entity) Description() string     { return e.description }
func (e *Entity) Status() Status          { return e.status }
func (e *Entity) Priority() Priority      { return e.priority }
func (e *Entity) CreatedDate() time.Time  { return e.created }
func (e *Entity) StartedDate() time.Time  { return e.started }
func (e *Entity) FinishedDate() time.Time { return e.finished }

// ActivityLog returns a copy of the append-only audit lines.
func (e *Entity) ActivityLog() []string {
	out := make([]string, len(e.log))
	copy(out, e.log)
	return out
}

// Report renders the activity log as one human-readable block.
func (e *Entity) Report() string {
	return strings.Join(e.log, "\n")
}

// Get returns the current value of a property. Every property is readable.
func (e *Entity) Get(p Property) Value {
	switch p {
	case PropertyDescription:
		return StringValue(e.description)
	case PropertyStatus:
		return StatusValue(e.status)
	case PropertyPriority:
		return PriorityValue(e.priority)
	case PropertyCreatedDate:
		return TimeValue(e.created)
	case PropertyStartedDate:
		return TimeValue(e.started)
	case PropertyFinishedDate:
		return TimeValue(e.finished)
	case PropertyReport:
		return StringValue(e.Report())
	default:
		return Value{}
	}
}

// Set validates and applies one property write. Writes are rejected as
// Forbidden when the property is read-only, the value is absent, or the
// payload shape does not match the property. Setting the status it already
// holds is a distinguished AlreadyExists no-op, so redundant transitions
// never re-stamp dates or pollute the log.
//
// Moving to InProgress stamps StartedDate, and moving to Done stamps
// FinishedDate, each only on the first such transition.
func (e *Entity) Set(p Property, v Value) status.State {
	if p.ReadOnly() {
		return status.Forbidden
	}
	if v.IsZero() || v.Kind() != p.ValueKind() {
		return status.Forbidden
	}

	switch p {
	case PropertyDescription:
		next, _ := v.AsString()
		e.appendLog(fmt.Sprintf("Changed description from '%s' to '%s'", e.description, next))
		e.description = next
	case PropertyStatus:
		next, _ := v.AsStatus()
		if next == e.status {
			return status.AlreadyExists
		}
		e.appendLog(fmt.Sprintf("Changed status from %s to %s", e.status, next))
		e.status = next
		e.stampTransition(next)
	case PropertyPriority:
		next, _ := v.AsPriority()
		e.appendLog(fmt.Sprintf("Changed priority from %s to %s", e.priority, next))
		e.priority = next
	default:
		return status.Forbidden
	}
	return status.Ok
}

// stampTransition derives the started/finished dates from status changes.
func (e *Entity) stampTransition(next Status) {
	now := time.Now()
	switch next {
	case StatusInProgress:
		if e.started.IsZero() {
			e.started = now
			e.appendLog(fmt.Sprintf("Changed start date from N/A to %s", now.Format(timeLayout)))
		}
	case StatusDone:
		if e.finished.IsZero() {
			e.finished = now
			e.appendLog(fmt.Sprintf("Changed finished date from N/A to %s", now.Format(timeLayout)))
		}
	}
}

func (e *Entity) appendLog(message string) {
	e.log = append(e.log, fmt.Sprintf("[EntityLog:%s] %s : %s", e.id, time.Now().Format(timeLayout), message))
}

// Details renders a short human-readable summary for console output.
func (e *Entity) Details() string {
	return fmt.Sprintf("%s Id: %s\nDescription: %s\nPriority: %s\nStatus: %s",
		e.kind, e.id, e.description, e.priority, e.status)
}

func orNone(s string) string {
	if s == "" {
		return "No description"
	}
	return s
}
