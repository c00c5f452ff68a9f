// Package manager implements the commands that change the candidate,
// position and interview records: edits with their cascades, plus add,
// delete, assign and unassign.
//
// Every command validates against a read of the store first and then
// applies its whole change set inside one store transaction, so a command
// either fully succeeds or leaves the store untouched.
package manager

import (
	"log/slog"

	"github.com/mesh-intelligence/hrmanager/internal/store"
)

// Result is the success payload of a command.
type Result struct {
	// Message is the user-facing summary, e.g. "Edited Candidate: ...".
	Message string `json:"message"`
	// ID is the primary entity the command touched.
	ID string `json:"id"`
}

// Manager runs commands against one store.
type Manager struct {
	store  *store.Store
	logger *slog.Logger
}

// New returns a Manager for s. A nil logger uses slog.Default().
func New(s *store.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: s, logger: logger}
}

// Store returns the store the manager operates on.
func (m *Manager) Store() *store.Store {
	return m.store
}
