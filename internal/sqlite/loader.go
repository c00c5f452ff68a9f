package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// tableColumns maps each collection to its SQLite column list. Order matters:
// entities load before the link tables that reference them.
var tableColumns = []struct {
	table   string
	columns []string
}{
	{types.TableCandidates, []string{"candidate_id", "ordinal", "name", "phone", "email", "address", "remark", "status", "tags", "created_at", "updated_at"}},
	{types.TablePositions, []string{"position_id", "ordinal", "title", "status", "created_at", "updated_at"}},
	{types.TableInterviews, []string{"interview_id", "ordinal", "position_id", "starts_at", "duration", "status", "created_at"}},
	{types.TableCandidatePositions, []string{"candidate_id", "position_id", "ordinal"}},
	{types.TableInterviewCandidates, []string{"interview_id", "candidate_id", "ordinal", "candidate_ordinal"}},
}

// loadAllJSONL reads each JSONL file from dataDir and inserts the records
// into the matching SQLite table. Loading is transactional: all tables load
// or the database stays empty. Malformed lines and rows that violate a
// constraint are skipped and logged. Unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string, logger *slog.Logger) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range tableColumns {
		file := jsonlFile(mapping.table)
		records, malformed, err := readJSONL(filepath.Join(dataDir, file))
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		rejected, err := insertRecords(tx, mapping.table, mapping.columns, records)
		if err != nil {
			return fmt.Errorf("loading %s into %s: %w", file, mapping.table, err)
		}
		if malformed+rejected > 0 {
			logger.Warn("skipped records while loading",
				"file", file,
				"malformed", malformed,
				"rejected", rejected)
		}
		logger.Debug("loaded table", "table", mapping.table, "records", len(records)-rejected)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords inserts JSON records into a SQLite table and returns how
// many were rejected. Only the listed columns are extracted; missing fields
// become NULL, and arrays or objects are stored as JSON text.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	rejected := 0
	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			rejected++
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			val, ok := obj[col]
			if !ok {
				continue
			}
			switch v := val.(type) {
			case map[string]any, []any:
				b, err := json.Marshal(v)
				if err != nil {
					continue
				}
				args[i] = string(b)
			case float64:
				// JSON numbers decode as float64; ordinals are integers.
				args[i] = int64(v)
			default:
				args[i] = val
			}
		}

		if _, err := stmt.Exec(args...); err != nil {
			rejected++
			continue
		}
	}
	return rejected, nil
}
