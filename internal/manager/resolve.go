package manager

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/hrmanager/internal/store"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// positionsFromTitles turns user-supplied titles into position values for
// resolution. Only the title is meaningful.
func positionsFromTitles(titles []string) []types.Position {
	out := make([]types.Position, 0, len(titles))
	for _, t := range titles {
		out = append(out, types.Position{Title: t})
	}
	return out
}

// positionsFromIDs looks up the positions a candidate already holds. A
// dangling ID fails with ErrPositionNotFound.
func positionsFromIDs(v store.View, ids []string) ([]types.Position, error) {
	out := make([]types.Position, 0, len(ids))
	for _, id := range ids {
		p, ok := v.Position(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", types.ErrPositionNotFound, id)
		}
		out = append(out, p)
	}
	return out, nil
}

// resolvePositions maps each supplied position onto the canonical stored
// position with the same identity and returns the canonical IDs, without
// duplicates, in input order. It fails with ErrPositionNotFound when nothing
// matches and ErrPositionClosed when the match is closed.
func resolvePositions(v store.View, supplied []types.Position) ([]string, error) {
	ids := make([]string, 0, len(supplied))
	for _, p := range supplied {
		ref, err := v.PositionReference(p)
		if err != nil {
			return nil, err
		}
		if !ref.IsOpen() {
			return nil, fmt.Errorf("%w: %s", types.ErrPositionClosed, ref.Title)
		}
		if !slices.Contains(ids, ref.PositionID) {
			ids = append(ids, ref.PositionID)
		}
	}
	return ids, nil
}
