package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/mesh-intelligence/hrmanager/internal/store"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// encodeSnapshot converts a store snapshot into JSONL records per table.
// Link rows are derived from the interview attendee lists; a link recorded
// only on the candidate side is not persisted.
func encodeSnapshot(snap store.Snapshot) (map[string][]json.RawMessage, error) {
	var (
		candidates  = make([]candidateJSON, 0, len(snap.Candidates))
		positions   = make([]positionJSON, 0, len(snap.Positions))
		interviews  = make([]interviewJSON, 0, len(snap.Interviews))
		held        []candidatePositionJSON
		attendances []interviewCandidateJSON
	)

	interviewOrder := make(map[string][]string, len(snap.Candidates))
	for i, c := range snap.Candidates {
		row := candidateJSON{
			CandidateID: c.CandidateID,
			Ordinal:     i,
			Name:        c.Name,
			Phone:       c.Phone,
			Email:       c.Email,
			Address:     c.Address,
			Status:      string(c.Status),
			Tags:        c.Tags,
			CreatedAt:   formatTime(c.CreatedAt),
			UpdatedAt:   formatTime(c.UpdatedAt),
		}
		if c.Remark != "" {
			remark := c.Remark
			row.Remark = &remark
		}
		candidates = append(candidates, row)
		for j, pid := range c.PositionIDs {
			held = append(held, candidatePositionJSON{CandidateID: c.CandidateID, PositionID: pid, Ordinal: j})
		}
		interviewOrder[c.CandidateID] = c.InterviewIDs
	}

	for i, p := range snap.Positions {
		positions = append(positions, positionJSON{
			PositionID: p.PositionID,
			Ordinal:    i,
			Title:      p.Title,
			Status:     string(p.Status),
			CreatedAt:  formatTime(p.CreatedAt),
			UpdatedAt:  formatTime(p.UpdatedAt),
		})
	}

	for i, iv := range snap.Interviews {
		interviews = append(interviews, interviewJSON{
			InterviewID: iv.InterviewID,
			Ordinal:     i,
			PositionID:  iv.PositionID,
			StartsAt:    formatTime(iv.StartsAt),
			Duration:    iv.Duration.String(),
			Status:      string(iv.Status),
			CreatedAt:   formatTime(iv.CreatedAt),
		})
		for j, cid := range iv.CandidateIDs {
			ids, ok := interviewOrder[cid]
			if !ok {
				continue
			}
			co := slices.Index(ids, iv.InterviewID)
			if co < 0 {
				co = len(ids)
			}
			attendances = append(attendances, interviewCandidateJSON{
				InterviewID:      iv.InterviewID,
				CandidateID:      cid,
				Ordinal:          j,
				CandidateOrdinal: co,
			})
		}
	}

	out := make(map[string][]json.RawMessage, len(tableColumns))
	var err error
	if out[types.TableCandidates], err = marshalRecords(candidates); err != nil {
		return nil, err
	}
	if out[types.TablePositions], err = marshalRecords(positions); err != nil {
		return nil, err
	}
	if out[types.TableInterviews], err = marshalRecords(interviews); err != nil {
		return nil, err
	}
	if out[types.TableCandidatePositions], err = marshalRecords(held); err != nil {
		return nil, err
	}
	if out[types.TableInterviewCandidates], err = marshalRecords(attendances); err != nil {
		return nil, err
	}
	return out, nil
}

// readSnapshot queries every table and rebuilds a store snapshot in display
// order.
func readSnapshot(db *sql.DB) (store.Snapshot, error) {
	var snap store.Snapshot

	candidates, err := readCandidates(db)
	if err != nil {
		return snap, err
	}
	positions, err := readPositions(db)
	if err != nil {
		return snap, err
	}
	interviews, err := readInterviews(db)
	if err != nil {
		return snap, err
	}

	candidateIdx := make(map[string]int, len(candidates))
	for i, c := range candidates {
		candidateIdx[c.CandidateID] = i
	}
	interviewIdx := make(map[string]int, len(interviews))
	for i, iv := range interviews {
		interviewIdx[iv.InterviewID] = i
	}

	err = eachRow(db, "SELECT candidate_id, position_id FROM candidate_positions ORDER BY ordinal, rowid",
		func(rows *sql.Rows) error {
			var cid, pid string
			if err := rows.Scan(&cid, &pid); err != nil {
				return err
			}
			if i, ok := candidateIdx[cid]; ok {
				candidates[i].AddPosition(pid)
			}
			return nil
		})
	if err != nil {
		return snap, fmt.Errorf("reading %s: %w", types.TableCandidatePositions, err)
	}

	err = eachRow(db, "SELECT interview_id, candidate_id FROM interview_candidates ORDER BY ordinal, rowid",
		func(rows *sql.Rows) error {
			var iid, cid string
			if err := rows.Scan(&iid, &cid); err != nil {
				return err
			}
			if i, ok := interviewIdx[iid]; ok {
				interviews[i].AddCandidate(cid)
			}
			return nil
		})
	if err != nil {
		return snap, fmt.Errorf("reading %s: %w", types.TableInterviewCandidates, err)
	}

	err = eachRow(db, "SELECT interview_id, candidate_id FROM interview_candidates ORDER BY candidate_ordinal, rowid",
		func(rows *sql.Rows) error {
			var iid, cid string
			if err := rows.Scan(&iid, &cid); err != nil {
				return err
			}
			if i, ok := candidateIdx[cid]; ok {
				candidates[i].AddInterview(iid)
			}
			return nil
		})
	if err != nil {
		return snap, fmt.Errorf("reading %s: %w", types.TableInterviewCandidates, err)
	}

	snap.Candidates = candidates
	snap.Positions = positions
	snap.Interviews = interviews
	return snap, nil
}

func readCandidates(db *sql.DB) ([]types.Candidate, error) {
	var out []types.Candidate
	err := eachRow(db, `SELECT candidate_id, name, phone, email, address, remark, status, tags, created_at, updated_at
		FROM candidates ORDER BY ordinal, rowid`,
		func(rows *sql.Rows) error {
			var (
				c                    types.Candidate
				remark, tags         sql.NullString
				status               string
				createdAt, updatedAt string
			)
			if err := rows.Scan(&c.CandidateID, &c.Name, &c.Phone, &c.Email, &c.Address,
				&remark, &status, &tags, &createdAt, &updatedAt); err != nil {
				return err
			}
			c.Remark = remark.String
			c.Status = types.CandidateStatus(status)
			if tags.Valid && tags.String != "" {
				if err := json.Unmarshal([]byte(tags.String), &c.Tags); err != nil {
					return fmt.Errorf("candidate %s tags: %w", c.CandidateID, err)
				}
			}
			var err error
			if c.CreatedAt, err = parseTime(createdAt); err != nil {
				return err
			}
			if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
				return err
			}
			out = append(out, c)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", types.TableCandidates, err)
	}
	return out, nil
}

func readPositions(db *sql.DB) ([]types.Position, error) {
	var out []types.Position
	err := eachRow(db, "SELECT position_id, title, status, created_at, updated_at FROM positions ORDER BY ordinal, rowid",
		func(rows *sql.Rows) error {
			var (
				p                    types.Position
				status               string
				createdAt, updatedAt string
			)
			if err := rows.Scan(&p.PositionID, &p.Title, &status, &createdAt, &updatedAt); err != nil {
				return err
			}
			p.Status = types.PositionStatus(status)
			var err error
			if p.CreatedAt, err = parseTime(createdAt); err != nil {
				return err
			}
			if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
				return err
			}
			out = append(out, p)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", types.TablePositions, err)
	}
	return out, nil
}

func readInterviews(db *sql.DB) ([]types.Interview, error) {
	var out []types.Interview
	err := eachRow(db, "SELECT interview_id, position_id, starts_at, duration, status, created_at FROM interviews ORDER BY ordinal, rowid",
		func(rows *sql.Rows) error {
			var (
				i                          types.Interview
				startsAt, duration, status string
				createdAt                  string
			)
			if err := rows.Scan(&i.InterviewID, &i.PositionID, &startsAt, &duration, &status, &createdAt); err != nil {
				return err
			}
			i.Status = types.InterviewStatus(status)
			var err error
			if i.StartsAt, err = parseTime(startsAt); err != nil {
				return err
			}
			if i.Duration, err = time.ParseDuration(duration); err != nil {
				return fmt.Errorf("interview %s duration: %w", i.InterviewID, err)
			}
			if i.CreatedAt, err = parseTime(createdAt); err != nil {
				return err
			}
			out = append(out, i)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", types.TableInterviews, err)
	}
	return out, nil
}

// eachRow runs query and calls fn for every result row.
func eachRow(db *sql.DB, query string, fn func(rows *sql.Rows) error) error {
	rows, err := db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t, nil
}
