package teams

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/team-roster-service/internal/domain"
)

// Team is one of the two fixed sub-team labels inside a group.
type Team string

const (
	TeamA Team = "Time A"
	TeamB Team = "Time B"
)

// All returns the team labels in display order.
func All() []Team {
	return []Team{TeamA, TeamB}
}

// Valid reports whether t is one of the two known labels.
func (t Team) Valid() bool {
	return t == TeamA || t == TeamB
}

func (t Team) String() string { return string(t) }

// Parse converts a raw label into a Team, trimming surrounding whitespace.
func Parse(raw string) (Team, error) {
	t := Team(strings.TrimSpace(raw))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidTeam, raw)
	}
	return t, nil
}
