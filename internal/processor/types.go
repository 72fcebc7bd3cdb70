package processor

import (
	"io"
	"time"

	"packfix/pkg/imgutil"
)

type Mode int

const (
	// ModeScan detects and decides but writes nothing.
	ModeScan Mode = iota
	// ModePack additionally streams every file into the assembler.
	ModePack
)

type Options struct {
	Mode Mode
}

// Status is the outcome of the rename decision for one file.
type Status int

const (
	StatusUnchanged Status = iota
	StatusFixed
	// StatusSkipped is produced only by the pre-filter, never by the
	// pipeline or the rename decision itself.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusFixed:
		return "fixed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unchanged"
	}
}

// FileRecord is one input file: a forward-slash relative path and a
// handle that opens its content. Records are never mutated.
type FileRecord struct {
	RelPath string
	Open    func() (io.ReadCloser, error)
}

// Outcome records what happened to a single file.
type Outcome struct {
	OriginalPath string
	Name         string
	Kind         imgutil.Kind
	Status       Status
	FinalPath    string
}

type Summary struct {
	Total     int
	Processed int
	Fixed     int
	Started   time.Time
}

// ProgressUpdate carries counter deltas plus the outcome that caused
// them, for the live feed.
type ProgressUpdate struct {
	TotalDelta     int
	ProcessedDelta int
	FixedDelta     int
	Outcome        *Outcome
}

// Assembler receives the final (path, content) pairs. Add consumes
// content fully before returning; Close finalizes the archive.
type Assembler interface {
	Add(path string, content io.Reader) error
	Close() error
}
