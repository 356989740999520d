package records

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/preston-bernstein/team-roster-service/internal/domain"
	"github.com/preston-bernstein/team-roster-service/internal/domain/players"
	"github.com/preston-bernstein/team-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/team-roster-service/internal/keys"
	"github.com/preston-bernstein/team-roster-service/internal/teststubs"
)

func TestMissingKeysReadAsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := New(teststubs.NewStubSubstrate(), keys.NewScheme(""))

	names, err := repo.LoadIndex(ctx)
	if err != nil || names == nil || len(names) != 0 {
		t.Fatalf("expected empty index, got %#v (%v)", names, err)
	}
	roster, err := repo.LoadRoster(ctx, "Turma A")
	if err != nil || roster == nil || len(roster) != 0 {
		t.Fatalf("expected empty roster, got %#v (%v)", roster, err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	stub := teststubs.NewStubSubstrate()
	scheme := keys.NewScheme("")
	repo := New(stub, scheme)

	if err := repo.SaveIndex(ctx, []string{"Turma A"}); err != nil {
		t.Fatalf("unexpected save index error: %v", err)
	}
	roster := []players.Player{{Name: "Ana", Team: teams.TeamA}}
	if err := repo.SaveRoster(ctx, "Turma A", roster); err != nil {
		t.Fatalf("unexpected save roster error: %v", err)
	}

	names, _ := repo.LoadIndex(ctx)
	if !reflect.DeepEqual(names, []string{"Turma A"}) {
		t.Fatalf("unexpected index %v", names)
	}
	got, _ := repo.LoadRoster(ctx, "Turma A")
	if !reflect.DeepEqual(got, roster) {
		t.Fatalf("unexpected roster %v", got)
	}

	if err := repo.DeleteRoster(ctx, "Turma A"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if _, ok := stub.Value(scheme.RosterKey("Turma A")); ok {
		t.Fatalf("expected roster key to be removed")
	}
}

func TestStorageFaultsAreWrapped(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("io")
	stub := teststubs.NewStubSubstrate()
	stub.GetErr = boom
	stub.SetErr = boom
	stub.DeleteErr = boom
	repo := New(stub, keys.NewScheme(""))

	checks := map[string]error{}
	_, checks["load index"] = repo.LoadIndex(ctx)
	_, checks["load roster"] = repo.LoadRoster(ctx, "g")
	checks["save index"] = repo.SaveIndex(ctx, nil)
	checks["save roster"] = repo.SaveRoster(ctx, "g", nil)
	checks["delete roster"] = repo.DeleteRoster(ctx, "g")

	for name, err := range checks {
		sErr, ok := domain.AsStorageError(err)
		if !ok {
			t.Fatalf("%s: expected storage error, got %v", name, err)
		}
		if sErr.Key == "" || !errors.Is(err, boom) {
			t.Fatalf("%s: expected key and cause, got %+v", name, sErr)
		}
	}
}

func TestCorruptValuesCarryKey(t *testing.T) {
	ctx := context.Background()
	stub := teststubs.NewStubSubstrate()
	scheme := keys.NewScheme("")
	stub.Put(scheme.RosterKey("g"), "garbage")
	stub.Put(scheme.IndexKey(), `{"v":9,"kind":"group_index","groups":[]}`)
	repo := New(stub, scheme)

	_, err := repo.LoadRoster(ctx, "g")
	cErr, ok := domain.AsCorruptDataError(err)
	if !ok || cErr.Key != scheme.RosterKey("g") {
		t.Fatalf("expected corrupt roster with key, got %v", err)
	}
	_, err = repo.LoadIndex(ctx)
	if cErr, ok := domain.AsCorruptDataError(err); !ok || cErr.Key != scheme.IndexKey() {
		t.Fatalf("expected corrupt index with key, got %v", err)
	}
}
