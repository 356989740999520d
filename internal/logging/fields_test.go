package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestWithCommonTagsServiceAndVersion(t *testing.T) {
	attrs := WithCommon(nil, "team-roster-service", "dev")
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != FieldService || attrs[0].Value.String() != "team-roster-service" {
		t.Fatalf("expected service attr, got %+v", attrs[0])
	}
	if attrs[1].Key != FieldVersion || attrs[1].Value.String() != "dev" {
		t.Fatalf("expected version attr, got %+v", attrs[1])
	}

	kept := WithCommon([]slog.Attr{slog.String(FieldBackend, "redis")}, "", "")
	if len(kept) != 1 || kept[0].Key != FieldBackend {
		t.Fatalf("expected original attrs preserved, got %+v", kept)
	}
}

func TestRosterFieldsRenderAsJSONKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: "json", Output: &buf, Service: "team-roster-service"})
	Info(context.Background(), logger, "player added",
		FieldGroup, "Turma A", FieldPlayer, "Ana", FieldTeam, "Time A", FieldCount, 1)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON entry, got %q: %v", buf.String(), err)
	}
	want := map[string]any{
		"group":   "Turma A",
		"player":  "Ana",
		"team":    "Time A",
		"count":   float64(1),
		"service": "team-roster-service",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Fatalf("expected %s=%v, got %v (entry %v)", k, v, entry[k], entry)
		}
	}
}
