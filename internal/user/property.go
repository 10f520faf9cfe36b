package user

import "github.com/vk/pmcore/internal/permission"

// Property addresses one mutable aspect of a user for the registry's
// dispatcher.
type Property int

const (
	// PropertyID renames the user; the payload is the new id string.
	PropertyID Property = iota
	// PropertyAddPermission grants a permission; the payload is the flag.
	PropertyAddPermission
	// PropertyRemovePermission revokes a permission; the payload is the flag.
	PropertyRemovePermission
)

func (p Property) String() string {
	switch p {
	case PropertyID:
		return "ChangeUserId"
	case PropertyAddPermission:
		return "AddPermission"
	case PropertyRemovePermission:
		return "RemovePermission"
	default:
		return "Unknown"
	}
}

// PropertyValueKind discriminates the payload of a PropertyValue.
type PropertyValueKind int

const (
	PropertyValueNone PropertyValueKind = iota
	PropertyValueID
	PropertyValuePermission
)

// PropertyValue is the small tagged union carried by ChangeUserProperty.
type PropertyValue struct {
	kind PropertyValueKind
	id   string
	perm permission.Permission
}

// IDValue wraps a new user id.
func IDValue(id string) PropertyValue {
	return PropertyValue{kind: PropertyValueID, id: id}
}

// PermissionValue wraps a permission flag.
func PermissionValue(p permission.Permission) PropertyValue {
	return PropertyValue{kind: PropertyValuePermission, perm: p}
}

func (v PropertyValue) Kind() PropertyValueKind { return v.kind }
func (v PropertyValue) IsZero() bool            { return v.kind == PropertyValueNone }

func (v PropertyValue) AsID() (string, bool) {
	return v.id, v.kind == PropertyValueID
}

func (v PropertyValue) AsPermission() (permission.Permission, bool) {
	return v.perm, v.kind == PropertyValuePermission
}

// ValueKind returns the payload shape the property expects.
func (p Property) ValueKind() PropertyValueKind {
	if p == PropertyID {
		return PropertyValueID
	}
	return PropertyValuePermission
}
