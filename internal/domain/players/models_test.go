package players

import (
	"errors"
	"reflect"
	"testing"

	"github.com/preston-bernstein/team-roster-service/internal/domain"
	"github.com/preston-bernstein/team-roster-service/internal/domain/teams"
)

func TestPlayerJSONTags(t *testing.T) {
	playerType := reflect.TypeOf(Player{})
	for name, tag := range map[string]string{"Name": "name", "Team": "team"} {
		f, ok := playerType.FieldByName(name)
		if !ok {
			t.Fatalf("missing field %s", name)
		}
		if got := f.Tag.Get("json"); got != tag {
			t.Fatalf("field %s expected tag %s, got %s", name, tag, got)
		}
	}
}

func TestNewTrimsAndValidates(t *testing.T) {
	p, err := New("  Ana ", "Time A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Ana" || p.Team != teams.TeamA {
		t.Fatalf("unexpected player %+v", p)
	}

	if _, err := New(" ", "Time A"); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected invalid name, got %v", err)
	}
	if _, err := New("An\xffa", "Time A"); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected invalid name for non-UTF-8 input, got %v", err)
	}
	if _, err := New("Ana", "Time Z"); !errors.Is(err, domain.ErrInvalidTeam) {
		t.Fatalf("expected invalid team, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := (Player{Name: "Ana", Team: teams.TeamB}).Validate(); err != nil {
		t.Fatalf("expected valid player, got %v", err)
	}
	if err := (Player{Team: teams.TeamB}).Validate(); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected invalid name, got %v", err)
	}
	if err := (Player{Name: "\xff", Team: teams.TeamA}).Validate(); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected invalid name for non-UTF-8 input, got %v", err)
	}
	if err := (Player{Name: "Ana"}).Validate(); !errors.Is(err, domain.ErrInvalidTeam) {
		t.Fatalf("expected invalid team, got %v", err)
	}
}
