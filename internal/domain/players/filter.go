package players

import "github.com/preston-bernstein/team-roster-service/internal/domain/teams"

// FilterByTeam returns the players assigned to team, preserving roster order.
// The result is never nil.
func FilterByTeam(roster []Player, team teams.Team) []Player {
	out := make([]Player, 0, len(roster))
	for _, p := range roster {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

// PartitionByTeam splits a roster into one ordered slice per known team.
func PartitionByTeam(roster []Player) map[teams.Team][]Player {
	parts := make(map[teams.Team][]Player, 2)
	for _, t := range teams.All() {
		parts[t] = FilterByTeam(roster, t)
	}
	return parts
}

// IndexOf returns the position of the player named name, or -1.
func IndexOf(roster []Player, name string) int {
	for i, p := range roster {
		if p.Name == name {
			return i
		}
	}
	return -1
}
