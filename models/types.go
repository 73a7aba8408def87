package models

import "time"

// Defaults for the rating session start form
const (
	DefaultSessionSize = 15
	MaxSessionSize     = 100
	LeaderboardSize    = 10
	// A term counts as covered once this many distinct users rated it
	CoverageThreshold = 2
)

// Domain types

type User struct {
	ID          int64     `db:"id"`
	Username    string    `db:"username"`
	CreatedAt   time.Time `db:"created_at"`
	TotalPoints int       `db:"total_points"`
}

type Term struct {
	ID         int64     `db:"id"`
	Category   string    `db:"category"`
	Term       string    `db:"term"`
	ImportedAt time.Time `db:"imported_at"`
}

// CandidateTerm is a term eligible for a rating session with its
// distinct rater count.
type CandidateTerm struct {
	ID         int64  `db:"id"`
	Category   string `db:"category"`
	Term       string `db:"term"`
	RaterCount int    `db:"rater_count"`
}

type Mapping struct {
	ID          int64     `db:"id"`
	TermID      int64     `db:"term_id"`
	UserID      int64     `db:"user_id"`
	Codes       string    `db:"codes"` // JSON array of code strings
	NoCodeFound bool      `db:"no_code_found"`
	CreatedAt   time.Time `db:"created_at"`
}

// RatingSession is a user's batch of terms. Cursor indexes the next
// unanswered position in its term snapshot.
type RatingSession struct {
	ID          int64      `db:"id"`
	UserID      int64      `db:"user_id"`
	StartedAt   time.Time  `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
	TermsCount  int        `db:"terms_count"`
	Cursor      int        `db:"cursor_pos"`
	Length      int        `db:"length"`
}

// Done reports whether the cursor has moved past the last term.
func (s RatingSession) Done() bool {
	return s.Cursor >= s.Length
}

type ContactMessage struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Subject   string    `db:"subject"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
	Read      bool      `db:"read"`
}

// Aggregates

type UserStats struct {
	TotalMappings     int
	CompletedSessions int
	Streak            int // sessions completed in the trailing 7 days
}

type OverallProgress struct {
	TotalTerms     int
	CompletedTerms int
	Percentage     float64
}

type LeaderboardEntry struct {
	Username      string `db:"username"`
	MappingsCount int    `db:"mappings_count"`
}

type AdminOverview struct {
	TotalTerms     int
	TotalMappings  int
	TotalUsers     int
	TotalMessages  int
	UnreadMessages int
	Usernames      []string
}

// ExportRow is one line of the admin CSV export.
type ExportRow struct {
	Username    string    `db:"username"`
	Category    string    `db:"category"`
	Term        string    `db:"term"`
	Codes       string    `db:"codes"`
	NoCodeFound bool      `db:"no_code_found"`
	CreatedAt   time.Time `db:"created_at"`
}

// ImportResult summarises one importer run.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Encoding       string
}
