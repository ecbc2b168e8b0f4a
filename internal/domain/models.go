package domain

import (
	"errors"
	"fmt"
)

// DefaultProfileHost is the site that serves actor profile pages
const DefaultProfileHost = "www.imdb.com"

// MaxDisplayedRoles is how many roles a card shows before truncating
const MaxDisplayedRoles = 3

// ErrUnexpectedStatus is returned when the actor API answers with a non-200 status
var ErrUnexpectedStatus = errors.New("unexpected status from actor API")

// Movie is the film a role was played in
type Movie struct {
	Title string `json:"title"`
}

// RoleRecord is a single role of an actor
type RoleRecord struct {
	Name  string `json:"name"`
	Movie Movie  `json:"movie"`
}

// ActorRecord is one ranked actor returned by the API.
// Records are treated as immutable once decoded.
type ActorRecord struct {
	ImdbID      int          `json:"imdbId"`
	Name        string       `json:"name"`
	HeadshotURL *string      `json:"headshotUrl,omitempty"`
	Roles       []RoleRecord `json:"roles"`
}

// HasHeadshot reports whether the API supplied a usable headshot URL
func (a ActorRecord) HasHeadshot() bool {
	return a.HeadshotURL != nil && *a.HeadshotURL != ""
}

// Headshot returns the headshot URL, or fallback when none is present
func (a ActorRecord) Headshot(fallback string) string {
	if a.HasHeadshot() {
		return *a.HeadshotURL
	}
	return fallback
}

// HeadshotAlt returns the alternative text for the headshot image
func (a ActorRecord) HeadshotAlt() string {
	if a.HasHeadshot() {
		return fmt.Sprintf("%s's profile", a.Name)
	}
	return "No profile picture available"
}

// TopRoles returns at most limit roles and whether any were cut off
func (a ActorRecord) TopRoles(limit int) ([]RoleRecord, bool) {
	if limit < 0 {
		limit = 0
	}
	if len(a.Roles) <= limit {
		return a.Roles, false
	}
	return a.Roles[:limit], true
}

// String renders the role as "<role> in <movie title>"
func (r RoleRecord) String() string {
	return fmt.Sprintf("%s in %s", r.Name, r.Movie.Title)
}

// FormatImdbID renders a numeric person id the way the profile site expects it:
// "nm" followed by the id zero-padded to 7 digits.
func FormatImdbID(id int) string {
	return fmt.Sprintf("nm%07d", id)
}

// ProfileURL builds the external profile link for an actor id.
// An empty host falls back to DefaultProfileHost.
func ProfileURL(host string, id int) string {
	if host == "" {
		host = DefaultProfileHost
	}
	return fmt.Sprintf("https://%s/name/%s", host, FormatImdbID(id))
}
