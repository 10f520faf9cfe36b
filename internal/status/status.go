// Package status defines the result-code vocabulary shared by the registry
// and its callers. Expected domain outcomes (missing ids, duplicates,
// rejected mutations) are reported as values from this package rather than
// as errors; errors are reserved for construction and I/O failures.
package status

// State is the outcome of a registry operation addressing a single record.
type State int

const (
	// Ok means the operation committed.
	Ok State = iota
	// NotFound means the referenced id is not registered.
	NotFound
	// AlreadyExists means a duplicate create, or a no-op status transition.
	AlreadyExists
	// Forbidden means the mutation was rejected: a type-mismatched or
	// read-only property, an absent value, or failed factory validation.
	Forbidden
)

func (s State) String() string {
	switch s {
	case Ok:
		return "Ok"
	case NotFound:
		return "NotFound"
	case AlreadyExists:
		return "AlreadyExists"
	case Forbidden:
		return "Forbidden"
	default:
		return "Unknown"
	}
}

// Association is the outcome of an association-graph operation.
type Association int

const (
	// NoError means the link was created or removed.
	NoError Association = iota
	// DuplicatedAssociation means the link already exists; nothing changed.
	DuplicatedAssociation
	// UserNotFound means the user side of the pair is not registered.
	UserNotFound
	// EntityNotFound means an entity side of the pair is not registered.
	EntityNotFound
	// NoAssociation means the link to remove does not exist.
	NoAssociation
	// InvalidAssociation means the pair is illegal: a self-association, or
	// an entity pair that is not exactly one project and one task.
	InvalidAssociation
)

func (a Association) String() string {
	switch a {
	case NoError:
		return "NoError"
	case DuplicatedAssociation:
		return "DuplicatedAssociation"
	case UserNotFound:
		return "UserNotFound"
	case EntityNotFound:
		return "EntityNotFound"
	case NoAssociation:
		return "NoAssociation"
	case InvalidAssociation:
		return "InvalidAssociation"
	default:
		return "Unknown"
	}
}

// OperationResult is the coarse outcome reported by permission-gated user
// operations. Callers translate any non-Ok, non-NoError registry status into
// OperationFailed after first checking the actor's permission.
type OperationResult int

const (
	OperationOk OperationResult = iota
	OperationFailed
)

func (r OperationResult) String() string {
	if r == OperationOk {
		return "Ok"
	}
	return "Failed"
}
