package groups

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/team-roster-service/internal/domain"
	domaingroups "github.com/preston-bernstein/team-roster-service/internal/domain/groups"
	"github.com/preston-bernstein/team-roster-service/internal/logging"
	"github.com/preston-bernstein/team-roster-service/internal/metrics"
	"github.com/preston-bernstein/team-roster-service/internal/records"
)

// Service maintains the set of named groups.
type Service struct {
	repo    *records.Repo
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewService constructs a Service over the shared record layer.
func NewService(repo *records.Repo, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{repo: repo, logger: logger, metrics: recorder}
}

// CreateGroup registers a new group. An empty roster is implied until the
// first player is added. Any roster left behind by an interrupted removal of
// the same name is cleared before the index is written, so the index stays
// the source of truth and the new group always starts empty.
func (s *Service) CreateGroup(ctx context.Context, rawName string) (domaingroups.Group, error) {
	group, err := s.createGroup(ctx, rawName)
	s.metrics.RecordRosterMutation("create_group", err)
	return group, err
}

func (s *Service) createGroup(ctx context.Context, rawName string) (domaingroups.Group, error) {
	name, err := domaingroups.NormalizeName(rawName)
	if err != nil {
		return domaingroups.Group{}, err
	}

	unlockIndex, err := s.repo.LockIndex(ctx)
	if err != nil {
		return domaingroups.Group{}, err
	}
	defer unlockIndex()

	names, err := s.repo.LoadIndex(ctx)
	if err != nil {
		return domaingroups.Group{}, fmt.Errorf("create group %q: %w", name, err)
	}
	for _, existing := range names {
		if existing == name {
			return domaingroups.Group{}, fmt.Errorf("create group %q: %w", name, domain.ErrDuplicateGroup)
		}
	}

	unlockRoster, err := s.repo.LockRoster(ctx, name)
	if err != nil {
		return domaingroups.Group{}, err
	}
	defer unlockRoster()

	if err := s.repo.DeleteRoster(ctx, name); err != nil {
		return domaingroups.Group{}, fmt.Errorf("create group %q: %w", name, err)
	}
	if err := s.repo.SaveIndex(ctx, append(names, name)); err != nil {
		logging.Error(ctx, s.logger, "failed to save group index", err, logging.FieldGroup, name)
		return domaingroups.Group{}, fmt.Errorf("create group %q: %w", name, err)
	}

	logging.Info(ctx, s.logger, "group created", logging.FieldGroup, name)
	return domaingroups.Group{Name: name}, nil
}

// RemoveGroup deletes a group and its roster. The index is rewritten first;
// if the roster delete then fails, the leftover record is unreachable from the
// index and CreateGroup clears it before the name is reused.
func (s *Service) RemoveGroup(ctx context.Context, rawName string) error {
	err := s.removeGroup(ctx, rawName)
	s.metrics.RecordRosterMutation("remove_group", err)
	return err
}

func (s *Service) removeGroup(ctx context.Context, rawName string) error {
	name, err := domaingroups.NormalizeName(rawName)
	if err != nil {
		return err
	}

	unlockIndex, err := s.repo.LockIndex(ctx)
	if err != nil {
		return err
	}
	defer unlockIndex()

	names, err := s.repo.LoadIndex(ctx)
	if err != nil {
		return fmt.Errorf("remove group %q: %w", name, err)
	}
	remaining := make([]string, 0, len(names))
	found := false
	for _, existing := range names {
		if existing == name {
			found = true
			continue
		}
		remaining = append(remaining, existing)
	}
	if !found {
		return fmt.Errorf("remove group %q: %w", name, domain.ErrGroupNotFound)
	}

	unlockRoster, err := s.repo.LockRoster(ctx, name)
	if err != nil {
		return err
	}
	defer unlockRoster()

	if err := s.repo.SaveIndex(ctx, remaining); err != nil {
		logging.Error(ctx, s.logger, "failed to save group index", err, logging.FieldGroup, name)
		return fmt.Errorf("remove group %q: %w", name, err)
	}
	if err := s.repo.DeleteRoster(ctx, name); err != nil {
		logging.Error(ctx, s.logger, "group removed from index but roster delete failed", err, logging.FieldGroup, name)
		return fmt.Errorf("remove group %q: %w", name, err)
	}

	logging.Info(ctx, s.logger, "group removed", logging.FieldGroup, name)
	return nil
}

// ListGroups returns every group in creation order.
func (s *Service) ListGroups(ctx context.Context) ([]domaingroups.Group, error) {
	names, err := s.repo.LoadIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	out := make([]domaingroups.Group, 0, len(names))
	for _, name := range names {
		out = append(out, domaingroups.Group{Name: name})
	}
	return out, nil
}

// GroupExists reports whether the index lists name.
func (s *Service) GroupExists(ctx context.Context, rawName string) (bool, error) {
	name, err := domaingroups.NormalizeName(rawName)
	if err != nil {
		return false, err
	}
	names, err := s.repo.LoadIndex(ctx)
	if err != nil {
		return false, fmt.Errorf("lookup group %q: %w", name, err)
	}
	for _, existing := range names {
		if existing == name {
			return true, nil
		}
	}
	return false, nil
}
