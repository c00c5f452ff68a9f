package sqlite

// Schema DDL for all tables. Every row carries an ordinal so the display
// order of each collection survives a reload.
const (
	createCandidates = `CREATE TABLE candidates (
    candidate_id TEXT PRIMARY KEY,
    ordinal INTEGER NOT NULL,
    name TEXT NOT NULL,
    phone TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE COLLATE NOCASE,
    address TEXT NOT NULL,
    remark TEXT,
    status TEXT NOT NULL,
    tags TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createPositions = `CREATE TABLE positions (
    position_id TEXT PRIMARY KEY,
    ordinal INTEGER NOT NULL,
    title TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createInterviews = `CREATE TABLE interviews (
    interview_id TEXT PRIMARY KEY,
    ordinal INTEGER NOT NULL,
    position_id TEXT NOT NULL,
    starts_at TEXT NOT NULL,
    duration TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (position_id) REFERENCES positions(position_id)
);`

	createCandidatePositions = `CREATE TABLE candidate_positions (
    candidate_id TEXT NOT NULL,
    position_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    PRIMARY KEY (candidate_id, position_id),
    FOREIGN KEY (candidate_id) REFERENCES candidates(candidate_id),
    FOREIGN KEY (position_id) REFERENCES positions(position_id)
);`

	createInterviewCandidates = `CREATE TABLE interview_candidates (
    interview_id TEXT NOT NULL,
    candidate_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    candidate_ordinal INTEGER NOT NULL,
    PRIMARY KEY (interview_id, candidate_id),
    FOREIGN KEY (interview_id) REFERENCES interviews(interview_id),
    FOREIGN KEY (candidate_id) REFERENCES candidates(candidate_id)
);`
)

// Index DDL for common queries.
const (
	idxCandidatesStatus        = `CREATE INDEX idx_candidates_status ON candidates(status);`
	idxPositionsStatus         = `CREATE INDEX idx_positions_status ON positions(status);`
	idxInterviewsPosition      = `CREATE INDEX idx_interviews_position ON interviews(position_id);`
	idxCandidatePositionsPos   = `CREATE INDEX idx_candidate_positions_position ON candidate_positions(position_id);`
	idxInterviewCandidatesCand = `CREATE INDEX idx_interview_candidates_candidate ON interview_candidates(candidate_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createCandidates,
	createPositions,
	createInterviews,
	createCandidatePositions,
	createInterviewCandidates,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxCandidatesStatus,
	idxPositionsStatus,
	idxInterviewsPosition,
	idxCandidatePositionsPos,
	idxInterviewCandidatesCand,
}
