// Package codec converts the group index and rosters to and from the string
// form persisted by the storage substrate.
//
// Values are JSON envelopes tagged with a kind and schema version. Bare JSON
// arrays, as written by earlier clients, decode as schema version 0.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/preston-bernstein/team-roster-service/internal/domain"
	"github.com/preston-bernstein/team-roster-service/internal/domain/players"
)

// Version is the schema version written by Encode*.
const Version = 1

const (
	kindIndex  = "group_index"
	kindRoster = "roster"
)

type indexEnvelope struct {
	Version int      `json:"v"`
	Kind    string   `json:"kind"`
	Groups  []string `json:"groups"`
}

type rosterEnvelope struct {
	Version int              `json:"v"`
	Kind    string           `json:"kind"`
	Players []players.Player `json:"players"`
}

// EncodeIndex serializes the ordered set of group names.
func EncodeIndex(names []string) string {
	if names == nil {
		names = []string{}
	}
	return mustMarshal(indexEnvelope{Version: Version, Kind: kindIndex, Groups: names})
}

// EncodeRoster serializes a group's ordered player list.
func EncodeRoster(roster []players.Player) string {
	if roster == nil {
		roster = []players.Player{}
	}
	return mustMarshal(rosterEnvelope{Version: Version, Kind: kindRoster, Players: roster})
}

// DecodeIndex parses a value written by EncodeIndex.
func DecodeIndex(raw string) ([]string, error) {
	var names []string
	if isLegacyArray(raw) {
		if err := strictUnmarshal(raw, &names); err != nil {
			return nil, corrupt("legacy group index is not a string array", err)
		}
	} else {
		var env indexEnvelope
		if err := strictUnmarshal(raw, &env); err != nil {
			return nil, corrupt("group index is not valid JSON", err)
		}
		if err := checkHeader(env.Version, env.Kind, kindIndex); err != nil {
			return nil, err
		}
		names = env.Groups
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return nil, corrupt("group index contains an empty name", nil)
		}
		if _, dup := seen[name]; dup {
			return nil, corrupt(fmt.Sprintf("group index lists %q twice", name), nil)
		}
		seen[name] = struct{}{}
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// DecodeRoster parses a value written by EncodeRoster.
func DecodeRoster(raw string) ([]players.Player, error) {
	var roster []players.Player
	if isLegacyArray(raw) {
		if err := strictUnmarshal(raw, &roster); err != nil {
			return nil, corrupt("legacy roster is not a player array", err)
		}
	} else {
		var env rosterEnvelope
		if err := strictUnmarshal(raw, &env); err != nil {
			return nil, corrupt("roster is not valid JSON", err)
		}
		if err := checkHeader(env.Version, env.Kind, kindRoster); err != nil {
			return nil, err
		}
		roster = env.Players
	}

	seen := make(map[string]struct{}, len(roster))
	for i, p := range roster {
		if err := p.Validate(); err != nil {
			return nil, corrupt(fmt.Sprintf("roster entry %d", i), err)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, corrupt(fmt.Sprintf("roster lists player %q twice", p.Name), nil)
		}
		seen[p.Name] = struct{}{}
	}
	if roster == nil {
		roster = []players.Player{}
	}
	return roster, nil
}

func checkHeader(version int, kind, wantKind string) error {
	if kind != wantKind {
		return corrupt(fmt.Sprintf("expected kind %q, got %q", wantKind, kind), nil)
	}
	if version != Version {
		return corrupt(fmt.Sprintf("unsupported schema version %d", version), nil)
	}
	return nil
}

func isLegacyArray(raw string) bool {
	trimmed := bytes.TrimSpace([]byte(raw))
	return len(trimmed) > 0 && trimmed[0] == '['
}

func strictUnmarshal(raw string, dest any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("trailing data after value")
	}
	return nil
}

func corrupt(reason string, err error) error {
	return &domain.CorruptDataError{Reason: reason, Err: err}
}

func mustMarshal(v any) string {
	// Envelopes hold only strings and ints, so Marshal cannot fail.
	data, _ := json.Marshal(v)
	return string(data)
}
