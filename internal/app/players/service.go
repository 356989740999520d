package players

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/team-roster-service/internal/domain"
	domaingroups "github.com/preston-bernstein/team-roster-service/internal/domain/groups"
	"github.com/preston-bernstein/team-roster-service/internal/domain/players"
	"github.com/preston-bernstein/team-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/team-roster-service/internal/logging"
	"github.com/preston-bernstein/team-roster-service/internal/metrics"
	"github.com/preston-bernstein/team-roster-service/internal/records"
)

// Service manages the players of each group's roster.
type Service struct {
	repo    *records.Repo
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewService constructs a Service over the shared record layer.
func NewService(repo *records.Repo, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{repo: repo, logger: logger, metrics: recorder}
}

// AddPlayer appends a player to an existing group. Names are unique per group
// regardless of team.
func (s *Service) AddPlayer(ctx context.Context, name, team, group string) (players.Player, error) {
	p, err := s.addPlayer(ctx, name, team, group)
	s.metrics.RecordRosterMutation("add_player", err)
	return p, err
}

func (s *Service) addPlayer(ctx context.Context, name, team, rawGroup string) (players.Player, error) {
	p, err := players.New(name, team)
	if err != nil {
		return players.Player{}, err
	}
	group, err := domaingroups.NormalizeName(rawGroup)
	if err != nil {
		return players.Player{}, err
	}

	unlock, err := s.repo.LockRoster(ctx, group)
	if err != nil {
		return players.Player{}, err
	}
	defer unlock()

	if err := s.requireGroup(ctx, group); err != nil {
		return players.Player{}, fmt.Errorf("add player %q to %q: %w", p.Name, group, err)
	}

	roster, err := s.repo.LoadRoster(ctx, group)
	if err != nil {
		return players.Player{}, fmt.Errorf("add player %q to %q: %w", p.Name, group, err)
	}
	if players.IndexOf(roster, p.Name) >= 0 {
		return players.Player{}, fmt.Errorf("add player %q to %q: %w", p.Name, group, domain.ErrDuplicatePlayer)
	}

	if err := s.repo.SaveRoster(ctx, group, append(roster, p)); err != nil {
		logging.Error(ctx, s.logger, "failed to save roster", err, logging.FieldGroup, group, logging.FieldPlayer, p.Name)
		return players.Player{}, fmt.Errorf("add player %q to %q: %w", p.Name, group, err)
	}

	logging.Info(ctx, s.logger, "player added",
		logging.FieldGroup, group, logging.FieldPlayer, p.Name, logging.FieldTeam, p.Team.String())
	return p, nil
}

// RemovePlayer drops the named player from a group's roster. Removing a player
// that is not on the roster is a no-op, since callers may act on a stale list.
func (s *Service) RemovePlayer(ctx context.Context, name, group string) error {
	err := s.removePlayer(ctx, name, group)
	s.metrics.RecordRosterMutation("remove_player", err)
	return err
}

func (s *Service) removePlayer(ctx context.Context, rawName, rawGroup string) error {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return domain.ErrInvalidName
	}
	group, err := domaingroups.NormalizeName(rawGroup)
	if err != nil {
		return err
	}

	unlock, err := s.repo.LockRoster(ctx, group)
	if err != nil {
		return err
	}
	defer unlock()

	exists, err := s.groupExists(ctx, group)
	if err != nil {
		return fmt.Errorf("remove player %q from %q: %w", name, group, err)
	}
	if !exists {
		logging.Info(ctx, s.logger, "group not found, nothing to remove",
			logging.FieldGroup, group, logging.FieldPlayer, name)
		return nil
	}

	roster, err := s.repo.LoadRoster(ctx, group)
	if err != nil {
		return fmt.Errorf("remove player %q from %q: %w", name, group, err)
	}
	idx := players.IndexOf(roster, name)
	if idx < 0 {
		logging.Info(ctx, s.logger, "player not on roster, nothing to remove",
			logging.FieldGroup, group, logging.FieldPlayer, name)
		return nil
	}

	updated := append(roster[:idx:idx], roster[idx+1:]...)
	if err := s.repo.SaveRoster(ctx, group, updated); err != nil {
		logging.Error(ctx, s.logger, "failed to save roster", err, logging.FieldGroup, group, logging.FieldPlayer, name)
		return fmt.Errorf("remove player %q from %q: %w", name, group, err)
	}

	logging.Info(ctx, s.logger, "player removed", logging.FieldGroup, group, logging.FieldPlayer, name)
	return nil
}

// PlayersByTeam returns the group's players on team in insertion order. A group
// with no roster yields an empty list.
func (s *Service) PlayersByTeam(ctx context.Context, group, team string) ([]players.Player, error) {
	t, err := teams.Parse(team)
	if err != nil {
		return nil, err
	}
	roster, err := s.AllPlayers(ctx, group)
	if err != nil {
		return nil, err
	}
	return players.FilterByTeam(roster, t), nil
}

// AllPlayers returns every player of the group in insertion order. The group
// index is authoritative: a roster left behind by an interrupted group removal
// is not visible, and an unknown group yields an empty list.
func (s *Service) AllPlayers(ctx context.Context, rawGroup string) ([]players.Player, error) {
	group, err := domaingroups.NormalizeName(rawGroup)
	if err != nil {
		return nil, err
	}
	exists, err := s.groupExists(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("list players of %q: %w", group, err)
	}
	if !exists {
		return []players.Player{}, nil
	}
	roster, err := s.repo.LoadRoster(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("list players of %q: %w", group, err)
	}
	return roster, nil
}

// RosterByTeam splits the group's roster by team. Every team is present in the
// result, with an empty list when it has no players.
func (s *Service) RosterByTeam(ctx context.Context, group string) (map[teams.Team][]players.Player, error) {
	roster, err := s.AllPlayers(ctx, group)
	if err != nil {
		return nil, err
	}
	return players.PartitionByTeam(roster), nil
}

// PlayerByName returns a single player of the group.
func (s *Service) PlayerByName(ctx context.Context, group, rawName string) (players.Player, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return players.Player{}, domain.ErrInvalidName
	}
	roster, err := s.AllPlayers(ctx, group)
	if err != nil {
		return players.Player{}, err
	}
	idx := players.IndexOf(roster, name)
	if idx < 0 {
		return players.Player{}, fmt.Errorf("player %q: %w", name, domain.ErrPlayerNotFound)
	}
	return roster[idx], nil
}

func (s *Service) requireGroup(ctx context.Context, group string) error {
	exists, err := s.groupExists(ctx, group)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrGroupNotFound
	}
	return nil
}

func (s *Service) groupExists(ctx context.Context, group string) (bool, error) {
	names, err := s.repo.LoadIndex(ctx)
	if err != nil {
		return false, err
	}
	for _, existing := range names {
		if existing == group {
			return true, nil
		}
	}
	return false, nil
}
