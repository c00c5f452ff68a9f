package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/sh"

	"github.com/mesh-intelligence/hrmanager/internal/paths"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// packageStats counts source lines of one hrm package.
type packageStats struct {
	Prod int `json:"prod"`
	Test int `json:"test"`
}

// statsRecord is the JSON line printed by Stats.
type statsRecord struct {
	Packages map[string]packageStats `json:"packages"`
	GoProd   int                     `json:"go_loc_prod"`
	GoTest   int                     `json:"go_loc_test"`
	DataDir  string                  `json:"data_dir"`
	Records  map[string]int          `json:"records"`
}

// Stats prints lines of code per hrm package and the number of records in
// each table of the data directory (HRM_DATA_DIR or ./.hrm-db).
func Stats() error {
	rec := statsRecord{Packages: map[string]packageStats{}, Records: map[string]int{}}

	dirs, err := packageDirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		ps, err := countPackage(dir)
		if err != nil {
			return fmt.Errorf("counting %s: %w", dir, err)
		}
		rec.Packages[dir] = ps
		rec.GoProd += ps.Prod
		rec.GoTest += ps.Test
	}

	rec.DataDir, err = paths.ResolveDataDir("", "")
	if err != nil {
		return err
	}
	for _, table := range types.StandardTableNames {
		n, err := countRecords(filepath.Join(rec.DataDir, table+".jsonl"))
		if err != nil {
			return fmt.Errorf("counting %s: %w", table, err)
		}
		rec.Records[table] = n
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

// packageDirs lists the module's package directories relative to the root,
// without the build tooling.
func packageDirs() ([]string, error) {
	out, err := sh.Output(binGo, "list", "-f", "{{.Dir}}", "./...")
	if err != nil {
		return nil, err
	}
	root, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, dir := range strings.Split(out, "\n") {
		rel, err := filepath.Rel(root, strings.TrimSpace(dir))
		if err != nil || rel == "." || strings.HasPrefix(rel, "magefiles") {
			continue
		}
		dirs = append(dirs, filepath.ToSlash(rel))
	}
	sort.Strings(dirs)
	return dirs, nil
}

func countPackage(dir string) (packageStats, error) {
	var ps packageStats
	files, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return ps, err
	}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return ps, err
		}
		n := bytes.Count(data, []byte("\n"))
		if strings.HasSuffix(file, "_test.go") {
			ps.Test += n
		} else {
			ps.Prod += n
		}
	}
	return ps, nil
}

// countRecords counts non-blank lines of a JSONL table. A missing file
// holds no records.
func countRecords(path string) (int, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			n++
		}
	}
	return n, scanner.Err()
}
