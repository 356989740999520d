package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	appgroups "github.com/preston-bernstein/team-roster-service/internal/app/groups"
	appplayers "github.com/preston-bernstein/team-roster-service/internal/app/players"
	"github.com/preston-bernstein/team-roster-service/internal/domain"
	"github.com/preston-bernstein/team-roster-service/internal/domain/groups"
	"github.com/preston-bernstein/team-roster-service/internal/domain/players"
	"github.com/preston-bernstein/team-roster-service/internal/logging"
)

const maxBodyBytes = 1 << 20

// ReadyFunc reports whether the storage substrate can serve traffic.
type ReadyFunc func(ctx context.Context) error

// Handler wires HTTP routes to the group and player repositories.
type Handler struct {
	groups  *appgroups.Service
	players *appplayers.Service
	ready   ReadyFunc
	logger  *slog.Logger
}

// NewHandler constructs a Handler. A nil ready func always reports ready.
func NewHandler(groupSvc *appgroups.Service, playerSvc *appplayers.Service, ready ReadyFunc, logger *slog.Logger) *Handler {
	return &Handler{
		groups:  groupSvc,
		players: playerSvc,
		ready:   ready,
		logger:  logger,
	}
}

// GroupsResponse lists groups in creation order.
type GroupsResponse struct {
	Groups []groups.Group `json:"groups"`
}

// PlayersResponse lists a group's players, optionally narrowed to one team.
type PlayersResponse struct {
	Group   string           `json:"group"`
	Team    string           `json:"team,omitempty"`
	Players []players.Player `json:"players"`
}

// TeamsResponse splits a group's roster by team name.
type TeamsResponse struct {
	Group string                      `json:"group"`
	Teams map[string][]players.Player `json:"teams"`
}

type createGroupRequest struct {
	Name string `json:"name"`
}

type addPlayerRequest struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic by pinging storage.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			logging.Warn(r.Context(), h.logger, "readiness check failed", "err", err)
			writeError(w, r, http.StatusServiceUnavailable, "storage not ready", h.logger)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// ListGroups returns every group.
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	list, err := h.groups.ListGroups(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, GroupsResponse{Groups: list}, h.logger)
}

// CreateGroup registers a new group from {"name": ...}.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	group, err := h.groups.CreateGroup(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, group, h.logger)
}

// GetGroup reports whether a group exists.
func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	name, err := groups.NormalizeName(r.PathValue("group"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	ok, err := h.groups.GroupExists(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !ok {
		writeServiceError(w, r, fmt.Errorf("group %q: %w", name, domain.ErrGroupNotFound), h.logger)
		return
	}
	writeJSON(w, http.StatusOK, groups.Group{Name: name}, h.logger)
}

// RemoveGroup deletes a group and its roster.
func (h *Handler) RemoveGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.groups.RemoveGroup(r.Context(), r.PathValue("group")); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPlayers returns the group's roster, filtered by ?team= when given.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	group := r.PathValue("group")
	team := r.URL.Query().Get("team")

	var (
		roster []players.Player
		err    error
	)
	if team != "" {
		roster, err = h.players.PlayersByTeam(r.Context(), group, team)
	} else {
		roster, err = h.players.AllPlayers(r.Context(), group)
	}
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	logging.Debug(r.Context(), h.logger, "served roster",
		logging.FieldGroup, group, logging.FieldTeam, team, logging.FieldCount, len(roster))
	writeJSON(w, http.StatusOK, PlayersResponse{Group: group, Team: team, Players: roster}, h.logger)
}

// ListTeams returns the group's roster split by team.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	group := r.PathValue("group")
	parts, err := h.players.RosterByTeam(r.Context(), group)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	resp := TeamsResponse{Group: group, Teams: make(map[string][]players.Player, len(parts))}
	for team, roster := range parts {
		resp.Teams[team.String()] = roster
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}

// AddPlayer appends a player from {"name": ..., "team": ...}.
func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var req addPlayerRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	p, err := h.players.AddPlayer(r.Context(), req.Name, req.Team, r.PathValue("group"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, p, h.logger)
}

// GetPlayer returns one player of the group.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	p, err := h.players.PlayerByName(r.Context(), r.PathValue("group"), r.PathValue("player"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, p, h.logger)
}

// RemovePlayer drops a player from the group; missing players are not an error.
func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	if err := h.players.RemovePlayer(r.Context(), r.PathValue("player"), r.PathValue("group")); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		msg := "invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		writeError(w, r, http.StatusBadRequest, msg, h.logger)
		return false
	}
	return true
}
