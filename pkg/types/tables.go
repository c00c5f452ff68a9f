package types

// Standard collection names, used as SQLite table names and JSONL file stems.
const (
	TableCandidates          = "candidates"
	TablePositions           = "positions"
	TableInterviews          = "interviews"
	TableCandidatePositions  = "candidate_positions"
	TableInterviewCandidates = "interview_candidates"
)

// StandardTableNames lists all collection names in load order: entities
// before the link tables that reference them.
var StandardTableNames = []string{
	TableCandidates,
	TablePositions,
	TableInterviews,
	TableCandidatePositions,
	TableInterviewCandidates,
}
