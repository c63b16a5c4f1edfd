// Package audit keeps a history of changes to the result store.
package audit

import "time"

// Action describes what was done to a year's results.
type Action string

const (
	// ActionImported is a first import of a year.
	ActionImported Action = "imported"
	// ActionReplaced is a re-import over existing rows.
	ActionReplaced Action = "replaced"
	// ActionFailed is an import whose document could not be read or whose
	// rows were rolled back.
	ActionFailed Action = "failed"
)

// Entry is a single import history record.
type Entry struct {
	ID        string
	Timestamp time.Time
	Actor     string
	Action    Action
	Year      string
	Source    string
	Records   int
	Detail    string
}
