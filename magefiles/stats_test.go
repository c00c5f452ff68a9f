package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountPackage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "store.go"), []byte("package store\n\nfunc New() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "store_test.go"), []byte("package store\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored\n"), 0o644))

	ps, err := countPackage(dir)
	require.NoError(t, err)
	assert.Equal(t, packageStats{Prod: 3, Test: 1}, ps)
}

func TestCountRecords(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content *string
		want    int
	}{
		{"missing file", nil, 0},
		{"empty file", ptr(""), 0},
		{"blank lines skipped", ptr(`{"candidate_id":"a"}` + "\n\n" + `{"candidate_id":"b"}` + "\n   \n"), 2},
		{"no trailing newline", ptr(`{"position_id":"p"}`), 1},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, string(rune('a'+i))+".jsonl")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}
			n, err := countRecords(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func ptr(s string) *string { return &s }
