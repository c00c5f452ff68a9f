package sqlite

// JSON record structures that mirror the JSONL file format. Field names match
// the SQLite column names so the loader can insert records directly.

// candidateJSON represents a candidate in candidates.jsonl. Position and
// interview links live in their own files.
type candidateJSON struct {
	CandidateID string   `json:"candidate_id"`
	Ordinal     int      `json:"ordinal"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Remark      *string  `json:"remark"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// positionJSON represents a position in positions.jsonl.
type positionJSON struct {
	PositionID string `json:"position_id"`
	Ordinal    int    `json:"ordinal"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// interviewJSON represents an interview in interviews.jsonl. Duration uses
// Go duration syntax ("1h30m").
type interviewJSON struct {
	InterviewID string `json:"interview_id"`
	Ordinal     int    `json:"ordinal"`
	PositionID  string `json:"position_id"`
	StartsAt    string `json:"starts_at"`
	Duration    string `json:"duration"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// candidatePositionJSON represents one position held by a candidate.
type candidatePositionJSON struct {
	CandidateID string `json:"candidate_id"`
	PositionID  string `json:"position_id"`
	Ordinal     int    `json:"ordinal"`
}

// interviewCandidateJSON represents one attendee of an interview. The row is
// the only record of the link: both the interview's attendee list (ordered
// by Ordinal) and the candidate's interview list (ordered by
// CandidateOrdinal) are rebuilt from it.
type interviewCandidateJSON struct {
	InterviewID      string `json:"interview_id"`
	CandidateID      string `json:"candidate_id"`
	Ordinal          int    `json:"ordinal"`
	CandidateOrdinal int    `json:"candidate_ordinal"`
}
