package entity

// Kind distinguishes the two entity variants tracked by the registry.
type Kind int

const (
	Project Kind = iota
	Task
)

func (k Kind) String() string {
	if k == Project {
		return "Project"
	}
	return "Task"
}

// ParseKind maps a kind tag back to its Kind. The tag is the exact string
// produced by Kind.String, as written by the persistence layer.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "Project":
		return Project, true
	case "Task":
		return Task, true
	default:
		return Project, false
	}
}

// Status is the workflow state of an entity.
type Status int

const (
	StatusNew Status = iota
	StatusReady
	StatusInProgress
	StatusInReview
	StatusDone
	StatusClosed
	StatusCancelled
)

var statusNames = [...]string{
	"New",
	"Ready",
	"InProgress",
	"InReview",
	"Done",
	"Closed",
	"Cancelled",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Unknown"
	}
	return statusNames[s]
}

// ParseStatus maps a status tag back to its Status.
func ParseStatus(s string) (Status, bool) {
	for i, name := range statusNames {
		if name == s {
			return Status(i), true
		}
	}
	return StatusNew, false
}

// Priority is the ordinal urgency scale of an entity.
type Priority int

const (
	PriorityLowest Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityHighest
)

var priorityNames = [...]string{
	"Lowest",
	"Low",
	"Medium",
	"High",
	"Highest",
}

func (p Priority) String() string {
	if p < 0 || int(p) >= len(priorityNames) {
		return "Unknown"
	}
	return priorityNames[p]
}

// ParsePriority maps a priority tag back to its Priority.
func ParsePriority(s string) (Priority, bool) {
	for i, name := range priorityNames {
		if name == s {
			return Priority(i), true
		}
	}
	return PriorityMedium, false
}
