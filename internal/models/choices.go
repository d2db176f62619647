package models

import "fmt"

// ItemType is the kind of catalog object being transferred or deleted
type ItemType string

const (
	ItemDataset ItemType = "dataset"
	ItemReuse   ItemType = "reuse"
)

// ItemTypes lists the item types in presentation order
var ItemTypes = []ItemType{ItemDataset, ItemReuse}

// Class returns the API class name used in transfer references
func (t ItemType) Class() string {
	switch t {
	case ItemReuse:
		return "Reuse"
	default:
		return "Dataset"
	}
}

// Label returns the singular lowercase label ("dataset")
func (t ItemType) Label() string {
	return string(t)
}

// Plural returns the plural lowercase label ("datasets")
func (t ItemType) Plural() string {
	return string(t) + "s"
}

// Endpoint returns the collection endpoint ("datasets/")
func (t ItemType) Endpoint() string {
	return t.Plural() + "/"
}

// ObjectPath returns the endpoint of a single object ("datasets/<id>/")
func (t ItemType) ObjectPath(id string) string {
	return fmt.Sprintf("%s%s/", t.Endpoint(), id)
}

// ItemFields is the X-Fields mask used when fetching a single item
const ItemFields = "id,slug,title,owner,organization"

// ItemPageFields is the X-Fields mask used when listing items
const ItemPageFields = "data{id,slug,title,owner,organization},total"

// SourceScope selects whose items a transfer starts from
type SourceScope string

const (
	SourceMine            SourceScope = "mine"
	SourceMyOrganizations SourceScope = "my_organizations"
	SourceAnyUser         SourceScope = "any_user"
	SourceAnyOrganization SourceScope = "any_organization"
)

var allSourceScopes = []SourceScope{SourceMine, SourceMyOrganizations, SourceAnyUser, SourceAnyOrganization}

// SourceScopes returns the scopes available to a user, in presentation order.
// Only admins may transfer from arbitrary users or organizations.
func SourceScopes(isAdmin bool) []SourceScope {
	scopes := make([]SourceScope, 0, len(allSourceScopes))
	for _, scope := range allSourceScopes {
		if isAdmin || !scope.RequiresAdmin() {
			scopes = append(scopes, scope)
		}
	}
	return scopes
}

// RequiresAdmin reports whether the scope is restricted to site admins
func (s SourceScope) RequiresAdmin() bool {
	return s == SourceAnyUser || s == SourceAnyOrganization
}

// IsUser reports whether the scope designates a user (filter on owner)
func (s SourceScope) IsUser() bool {
	return s == SourceMine || s == SourceAnyUser
}

// QueryKey returns the collection filter matching the scope
func (s SourceScope) QueryKey() string {
	if s.IsUser() {
		return "owner"
	}
	return "organization"
}

// TargetType is the kind of recipient of a transfer
type TargetType string

const (
	TargetUser         TargetType = "user"
	TargetOrganization TargetType = "organization"
)

// TargetTypes lists the target types in presentation order
var TargetTypes = []TargetType{TargetUser, TargetOrganization}

// Class returns the API class name used in transfer references
func (t TargetType) Class() string {
	if t == TargetOrganization {
		return "Organization"
	}
	return "User"
}

// Label returns the singular lowercase label ("organization")
func (t TargetType) Label() string {
	return string(t)
}

// Plural returns the plural lowercase label ("organizations")
func (t TargetType) Plural() string {
	return string(t) + "s"
}

// ObjectPath returns the endpoint of a single target ("organizations/<id>/")
func (t TargetType) ObjectPath(id string) string {
	return fmt.Sprintf("%s/%s/", t.Plural(), id)
}

// Fields returns the X-Fields mask used when fetching a target
func (t TargetType) Fields() string {
	if t == TargetOrganization {
		return "id,name"
	}
	return "id,first_name,last_name"
}
