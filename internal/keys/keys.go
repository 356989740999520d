package keys

import (
	"net/url"
	"strings"
)

// DefaultPrefix namespaces every key this service writes.
const DefaultPrefix = "team-roster"

const (
	indexSegment  = "groups"
	rosterSegment = "roster"
	separator     = ":"
)

// Scheme maps domain identifiers to storage keys.
type Scheme struct {
	prefix string
}

// NewScheme builds a Scheme rooted at prefix (DefaultPrefix when blank).
func NewScheme(prefix string) Scheme {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Scheme{prefix: prefix}
}

// Prefix returns the namespace shared by all keys.
func (s Scheme) Prefix() string {
	if s.prefix == "" {
		return DefaultPrefix
	}
	return s.prefix
}

// IndexKey is the constant key of the group index.
func (s Scheme) IndexKey() string {
	return s.Prefix() + separator + indexSegment
}

// RosterKey returns the key of a group's roster. Group names are query-escaped,
// which is reversible, so distinct names never share a key and no name can
// produce a separator inside the escaped segment.
func (s Scheme) RosterKey(groupName string) string {
	return s.Prefix() + separator + rosterSegment + separator + url.QueryEscape(groupName)
}
