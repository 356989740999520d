package keys

import "testing"

func TestIndexKeyIsConstant(t *testing.T) {
	s := NewScheme("")
	if s.IndexKey() != "team-roster:groups" {
		t.Fatalf("unexpected index key %s", s.IndexKey())
	}
	if NewScheme("app").IndexKey() != "app:groups" {
		t.Fatalf("expected custom prefix to be honored")
	}
	var zero Scheme
	if zero.IndexKey() != s.IndexKey() {
		t.Fatalf("expected zero scheme to use default prefix")
	}
}

func TestRosterKeyIsInjective(t *testing.T) {
	s := NewScheme("")
	names := []string{
		"Turma A",
		"Turma+A",
		"Turma%20A",
		"a:b",
		"a",
		"a:roster:b",
		"groups",
		"ç/ã",
		" ",
	}
	seen := make(map[string]string)
	for _, name := range names {
		key := s.RosterKey(name)
		if other, ok := seen[key]; ok {
			t.Fatalf("names %q and %q collide on %s", name, other, key)
		}
		if key == s.IndexKey() {
			t.Fatalf("roster key for %q collides with index key", name)
		}
		seen[key] = name
	}
}
