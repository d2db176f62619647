package models

import "strings"

// RoleAdmin is the site role that unlocks transfers from any user or organization
const RoleAdmin = "admin"

// User is a uData account as returned by `me`, `users/<id>/` and `users/suggest/`
type User struct {
	ID            string         `json:"id" yaml:"id"`
	FirstName     string         `json:"first_name" yaml:"first_name"`
	LastName      string         `json:"last_name" yaml:"last_name"`
	Email         string         `json:"email,omitempty" yaml:"email,omitempty"`
	Roles         []string       `json:"roles,omitempty" yaml:"roles,omitempty"`
	Organizations []Organization `json:"organizations,omitempty" yaml:"organizations,omitempty"`
}

// FullName returns "first last"
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the user holds the site admin role
func (u User) IsAdmin() bool {
	for _, role := range u.Roles {
		if role == RoleAdmin {
			return true
		}
	}
	return false
}

// Organization is a uData organization
type Organization struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Item is a dataset or a reuse, reduced to the fields needed for ownership transfers
type Item struct {
	ID           string        `json:"id"`
	Slug         string        `json:"slug"`
	Title        string        `json:"title"`
	Owner        *User         `json:"owner,omitempty"`
	Organization *Organization `json:"organization,omitempty"`
}

// OwnedBy reports whether the item already belongs to the given organization
func (i Item) OwnedBy(organizationID string) bool {
	return i.Organization != nil && i.Organization.ID == organizationID
}

// ItemPage is a page of datasets or reuses
type ItemPage struct {
	Data  []Item `json:"data"`
	Total int    `json:"total"`
}

// Site describes the instance as returned by the `site` endpoint
type Site struct {
	ID      string      `json:"id,omitempty" yaml:"id,omitempty"`
	Title   string      `json:"title" yaml:"title"`
	Metrics SiteMetrics `json:"metrics" yaml:"metrics"`
}

// SiteMetrics holds the instance-wide counters
type SiteMetrics struct {
	Datasets      int `json:"datasets" yaml:"datasets"`
	Reuses        int `json:"reuses" yaml:"reuses"`
	Organizations int `json:"organizations" yaml:"organizations"`
	Users         int `json:"users" yaml:"users"`
	Discussions   int `json:"discussions" yaml:"discussions"`
}
