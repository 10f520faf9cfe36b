package entity

import "time"

// ValueKind discriminates the payload carried by a Value.
type ValueKind int

const (
	// ValueNone is the zero Value; assigning it to any property is rejected.
	ValueNone ValueKind = iota
	ValueString
	ValueStatus
	ValuePriority
	ValueTime
)

// Value is the tagged union flowing through the property dispatcher. Typed
// callers construct it with one of the constructors below, so an invalid-type
// assignment can only originate from an external boundary (console input,
// deserialization) going through ParseValue.
type Value struct {
	kind     ValueKind
	str      string
	status   Status
	priority Priority
	ts       time.Time
}

func StringValue(s string) Value     { return Value{kind: ValueString, str: s} }
func StatusValue(s Status) Value     { return Value{kind: ValueStatus, status: s} }
func PriorityValue(p Priority) Value { return Value{kind: ValuePriority, priority: p} }
func TimeValue(t time.Time) Value    { return Value{kind: ValueTime, ts: t} }

// Kind returns the payload discriminator.
func (v Value) Kind() ValueKind { return v.kind }

// IsZero reports whether the value carries no payload at all.
func (v Value) IsZero() bool { return v.kind == ValueNone }

func (v Value) AsString() (string, bool)     { return v.str, v.kind == ValueString }
func (v Value) AsStatus() (Status, bool)     { return v.status, v.kind == ValueStatus }
func (v Value) AsPriority() (Priority, bool) { return v.priority, v.kind == ValuePriority }
func (v Value) AsTime() (time.Time, bool)    { return v.ts, v.kind == ValueTime }

// String renders the payload for activity-log lines and console output.
func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueStatus:
		return v.status.String()
	case ValuePriority:
		return v.priority.String()
	case ValueTime:
		if v.ts.IsZero() {
			return "N/A"
		}
		return v.ts.Format(timeLayout)
	default:
		return "N/A"
	}
}

// timeLayout is the wire format for all entity dates.
const timeLayout = "2006-01-02 15:04:05"

// ParseValue converts raw text arriving from an external boundary into the
// Value shape a property expects. It reports false when the text does not
// parse as that shape; the dispatcher then rejects the write as forbidden.
func ParseValue(p Property, raw string) (Value, bool) {
	switch p.ValueKind() {
	case ValueString:
		return StringValue(raw), true
	case ValueStatus:
		s, ok := ParseStatus(raw)
		if !ok {
			return Value{}, false
		}
		return StatusValue(s), true
	case ValuePriority:
		pr, ok := ParsePriority(raw)
		if !ok {
			return Value{}, false
		}
		return PriorityValue(pr), true
	case ValueTime:
		t, err := time.Parse(timeLayout, raw)
		if err != nil {
			return Value{}, false
		}
		return TimeValue(t), true
	default:
		return Value{}, false
	}
}
