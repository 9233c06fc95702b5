package manifest

import (
	"strings"
	"time"
)

// Status describes the lifecycle state of a planned transfer.
type Status string

const (
	StatusPlanned Status = "planned"
	StatusCopied  Status = "copied"
	StatusSkipped Status = "skipped"
	StatusMissing Status = "missing"
	StatusFailed  Status = "failed"
)

// TerminalStatuses lists the states an executed transfer can end in.
var TerminalStatuses = []Status{StatusCopied, StatusSkipped, StatusMissing, StatusFailed}

// Entry is one planned file transfer. SourcePath is unique per store, so
// re-planning updates pending rows instead of duplicating them.
type Entry struct {
	ID           int64
	BatchID      string
	SourcePath   string
	TargetPath   string
	FinalPath    string
	Author       string
	Reasons      []string
	Status       Status
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Summary aggregates terminal transfer counts for one batch.
type Summary struct {
	Planned int
	Copied  int
	Skipped int
	Missing int
	Failed  int
}

// Total returns the number of entries the summary covers.
func (s Summary) Total() int {
	return s.Planned + s.Copied + s.Skipped + s.Missing + s.Failed
}

func joinReasons(reasons []string) string {
	return strings.Join(reasons, ";")
}

func splitReasons(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	return strings.Split(joined, ";")
}
