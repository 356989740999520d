package players

import (
	"strings"

	"github.com/preston-bernstein/team-roster-service/internal/domain"
	"github.com/preston-bernstein/team-roster-service/internal/domain/teams"
)

// Player is a named member of exactly one group and one team within it.
type Player struct {
	Name string     `json:"name"`
	Team teams.Team `json:"team"`
}

// New builds a validated Player from raw input.
func New(name, team string) (Player, error) {
	trimmed := strings.TrimSpace(name)
	if err := domain.CheckName(trimmed); err != nil {
		return Player{}, err
	}
	t, err := teams.Parse(team)
	if err != nil {
		return Player{}, err
	}
	return Player{Name: trimmed, Team: t}, nil
}

// Validate checks an already-built Player.
func (p Player) Validate() error {
	if err := domain.CheckName(p.Name); err != nil {
		return err
	}
	if !p.Team.Valid() {
		return domain.ErrInvalidTeam
	}
	return nil
}
