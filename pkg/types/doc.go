// Package types defines the hiring-pipeline entities (Candidate, Position,
// Interview), their identity rules and link helpers, backend configuration,
// and the standard error values shared by the store, the edit commands and
// the CLI.
//
// Entities reference each other by ID. A candidate holds the IDs of the
// positions it applied for and the interviews it attends; an interview holds
// its position ID and its attendees' candidate IDs. Keeping both sides of
// those links in step is the job of internal/store and internal/manager.
package types
