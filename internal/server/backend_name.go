package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/team-roster-service/internal/store"
)

// normalizeBackendName returns a lower-cased backend name, deriving from the instance when not explicitly configured.
func normalizeBackendName(raw string, sub store.Substrate) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if sub != nil {
		name := strings.ToLower(fmt.Sprintf("%T", sub))
		return strings.TrimPrefix(name, "*store.")
	}
	return "substrate"
}
