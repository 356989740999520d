package groups

import (
	"strings"

	"github.com/preston-bernstein/team-roster-service/internal/domain"
)

// Group is a named roster (a class or team). Its name is its identity.
type Group struct {
	Name string `json:"name"`
}

// NormalizeName trims the user-supplied name and rejects blank or non-UTF-8 input.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if err := domain.CheckName(name); err != nil {
		return "", err
	}
	return name, nil
}
