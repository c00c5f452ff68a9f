package sqlite

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hrmanager/internal/store"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

func newTestBackend(t *testing.T, dataDir string) *Backend {
	t.Helper()
	b := NewBackend(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	t.Cleanup(func() { _ = b.Detach() })
	return b
}

var created = time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)

// sampleSnapshot holds two positions, two candidates and two interviews.
// Bob attends y before x, which is the reverse of the interview order.
func sampleSnapshot() store.Snapshot {
	return store.Snapshot{
		Positions: []types.Position{
			{PositionID: "p1", Title: "Software Engineer", Status: types.PositionOpen, CreatedAt: created, UpdatedAt: created},
			{PositionID: "p2", Title: "Data Analyst", Status: types.PositionClosed, CreatedAt: created, UpdatedAt: created.Add(time.Hour)},
		},
		Candidates: []types.Candidate{
			{
				CandidateID: "c1", Name: "Alice Pauline", Phone: "94351253", Email: "alice@example.com",
				Address: "123, Jurong West Ave 6", Remark: "referral", Status: types.StatusScheduled,
				Tags: []string{"friends", "senior"}, PositionIDs: []string{"p1"}, InterviewIDs: []string{"x"},
				CreatedAt: created, UpdatedAt: created,
			},
			{
				CandidateID: "c2", Name: "Bob Choo", Phone: "98765432", Email: "bob@example.com",
				Address: "311, Clementi Ave 2", Status: types.StatusInterviewed,
				PositionIDs: []string{"p2", "p1"}, InterviewIDs: []string{"y", "x"},
				CreatedAt: created, UpdatedAt: created,
			},
		},
		Interviews: []types.Interview{
			{
				InterviewID: "x", PositionID: "p1", CandidateIDs: []string{"c1", "c2"},
				StartsAt: created.Add(48 * time.Hour), Duration: 90 * time.Minute,
				Status: types.InterviewPending, CreatedAt: created,
			},
			{
				InterviewID: "y", PositionID: "p2", CandidateIDs: []string{"c2"},
				StartsAt: created.Add(24 * time.Hour), Duration: time.Hour,
				Status: types.InterviewCompleted, CreatedAt: created,
			},
		},
	}
}

// normalize maps empty link and tag slices to nil so that snapshots that
// differ only in nil-versus-empty compare equal.
func normalize(snap store.Snapshot) store.Snapshot {
	for i := range snap.Candidates {
		c := &snap.Candidates[i]
		if len(c.Tags) == 0 {
			c.Tags = nil
		}
		if len(c.PositionIDs) == 0 {
			c.PositionIDs = nil
		}
		if len(c.InterviewIDs) == 0 {
			c.InterviewIDs = nil
		}
	}
	for i := range snap.Interviews {
		if len(snap.Interviews[i].CandidateIDs) == 0 {
			snap.Interviews[i].CandidateIDs = nil
		}
	}
	return snap
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if len(sc.Bytes()) > 0 {
			n++
		}
	}
	require.NoError(t, sc.Err())
	return n
}

func TestAttach_CreatesEmptyFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := newTestBackend(t, dir)

	assert.Equal(t, dir, b.DataDir())
	for _, table := range types.StandardTableNames {
		info, err := os.Stat(filepath.Join(dir, jsonlFile(table)))
		require.NoError(t, err, table)
		assert.Zero(t, info.Size(), table)
	}
	_, err := os.Stat(filepath.Join(dir, DatabaseFile))
	assert.NoError(t, err)

	s := store.New()
	require.NoError(t, b.Load(s))
	assert.Empty(t, s.Candidates())
}

func TestAttach_Errors(t *testing.T) {
	b := newTestBackend(t, t.TempDir())
	assert.ErrorIs(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}), types.ErrAlreadyAttached)

	other := NewBackend(nil)
	assert.ErrorIs(t, other.Attach(types.Config{DataDir: t.TempDir()}), types.ErrBackendEmpty)
	assert.ErrorIs(t, other.Attach(types.Config{Backend: "postgres"}), types.ErrBackendUnknown)
}

func TestDetached(t *testing.T) {
	b := NewBackend(nil)
	s := store.New()

	assert.ErrorIs(t, b.Load(s), types.ErrBackendDetached)
	assert.ErrorIs(t, b.Save(s), types.ErrBackendDetached)
	assert.NoError(t, b.Detach(), "detach is idempotent")
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := sampleSnapshot()

	src := store.New()
	require.NoError(t, src.ImportState(want))
	b := newTestBackend(t, dir)
	require.NoError(t, b.Save(src))
	require.NoError(t, b.Detach())

	assert.Equal(t, 2, countLines(t, filepath.Join(dir, "candidates.jsonl")))
	assert.Equal(t, 3, countLines(t, filepath.Join(dir, "candidate_positions.jsonl")))
	assert.Equal(t, 3, countLines(t, filepath.Join(dir, "interview_candidates.jsonl")))

	reopened := newTestBackend(t, dir)
	dst := store.New()
	require.NoError(t, reopened.Load(dst))

	assert.Equal(t, normalize(want), normalize(dst.ExportState()))
	assert.Empty(t, dst.CheckLinks())
}

func TestSave_ReplacesPreviousContents(t *testing.T) {
	dir := t.TempDir()
	b := newTestBackend(t, dir)

	s := store.New()
	require.NoError(t, s.ImportState(sampleSnapshot()))
	require.NoError(t, b.Save(s))

	require.NoError(t, s.RunInTransaction(func(tx *store.Tx) error {
		if err := tx.Unlink("y", "c2"); err != nil {
			return err
		}
		return tx.DeleteInterview("y")
	}))
	require.NoError(t, b.Save(s))

	assert.Equal(t, 1, countLines(t, filepath.Join(dir, "interviews.jsonl")))
	assert.Equal(t, 2, countLines(t, filepath.Join(dir, "interview_candidates.jsonl")))

	// The same attached backend reads back what it saved.
	loaded := store.New()
	require.NoError(t, b.Load(loaded))
	c2, ok := loaded.Candidate("c2")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, c2.InterviewIDs)
}

func TestAttach_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := `{"position_id":"p1","ordinal":0,"title":"Designer","status":"OPEN","created_at":"","updated_at":""}
this is not json
{"position_id":"p1","ordinal":1,"title":"Duplicate ID","status":"OPEN","created_at":"","updated_at":""}
{"position_id":"p2","ordinal":2,"title":"Recruiter","status":"CLOSED","created_at":"","updated_at":"","future_field":true}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "positions.jsonl"), []byte(content), 0o644))

	b := newTestBackend(t, dir)
	s := store.New()
	require.NoError(t, b.Load(s))

	positions := s.Positions()
	require.Len(t, positions, 2)
	assert.Equal(t, "Designer", positions[0].Title)
	assert.Equal(t, types.PositionClosed, positions[1].Status)
}

func TestWriteJSONL_Atomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "positions.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	recs, err := marshalRecords([]positionJSON{{PositionID: "p1", Title: "Designer"}})
	require.NoError(t, err)
	require.NoError(t, writeJSONL(path, recs))

	got, skipped, err := readJSONL(path)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, got, 1)
	assert.Contains(t, string(got[0]), `"title":"Designer"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}
