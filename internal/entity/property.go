package entity

// Property addresses one mutable or derived field of an entity for the
// generic get/set dispatcher.
type Property int

const (
	PropertyDescription Property = iota
	PropertyStatus
	PropertyPriority
	PropertyCreatedDate
	PropertyStartedDate
	PropertyFinishedDate
	PropertyReport
)

var propertyNames = [...]string{
	"Description",
	"Status",
	"Priority",
	"CreatedDate",
	"StartedDate",
	"FinishedDate",
	"Report",
}

func (p Property) String() string {
	if p < 0 || int(p) >= len(propertyNames) {
		return "Unknown"
	}
	return propertyNames[p]
}

// ValueKind returns the payload shape the property holds.
func (p Property) ValueKind() ValueKind {
	switch p {
	case PropertyDescription, PropertyReport:
		return ValueString
	case PropertyStatus:
		return ValueStatus
	case PropertyPriority:
		return ValuePriority
	case PropertyCreatedDate, PropertyStartedDate, PropertyFinishedDate:
		return ValueTime
	default:
		return ValueNone
	}
}

// ReadOnly reports whether writes to the property are rejected. CreatedDate
// is fixed at construction, Report is derived from the activity log, and the
// started/finished stamps are controlled exclusively by status transitions.
func (p Property) ReadOnly() bool {
	switch p {
	case PropertyCreatedDate, PropertyReport, PropertyStartedDate, PropertyFinishedDate:
		return true
	default:
		return false
	}
}
