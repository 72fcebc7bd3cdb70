package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"packfix/pkg/imgutil"
)

// ErrNoInput rejects a batch with nothing to process. The caller is
// expected to validate before starting a run; this is the backstop.
var ErrNoInput = errors.New("no files to process")

// Run processes files strictly in input order: sniff a bounded prefix,
// decide the final path, record the outcome, and (in ModePack) stream
// the file into dst under its final path. Counters and the outcome log
// advance together, one file at a time.
//
// A file whose content cannot be read is recorded as unknown/unchanged
// and the batch continues; only assembler failures and final-path
// collisions abort the run. Cancellation is checked between files only.
func Run(ctx context.Context, files []FileRecord, opts Options, dst Assembler, updates chan<- ProgressUpdate) ([]Outcome, Summary, error) {
	summary := Summary{Total: len(files), Started: time.Now()}
	if len(files) == 0 {
		return nil, summary, ErrNoInput
	}

	outcomes := make([]Outcome, 0, len(files))
	seen := make(map[string]struct{}, len(files))

	for i := range files {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return outcomes, summary, err
			}
		}

		outcome, content := inspect(&files[i])

		if opts.Mode == ModePack && content != nil {
			if _, dup := seen[outcome.FinalPath]; dup {
				content.Close()
				return outcomes, summary, fmt.Errorf("duplicate archive path %q", outcome.FinalPath)
			}
			seen[outcome.FinalPath] = struct{}{}

			if err := dst.Add(outcome.FinalPath, content); err != nil {
				content.Close()
				return outcomes, summary, fmt.Errorf("archive %s: %w", outcome.FinalPath, err)
			}
		}
		if content != nil {
			_ = content.Close()
		}

		outcomes = append(outcomes, outcome)
		summary.Processed++
		update := ProgressUpdate{ProcessedDelta: 1, Outcome: &outcomes[len(outcomes)-1]}
		if outcome.Status == StatusFixed {
			summary.Fixed++
			update.FixedDelta = 1
		}
		if updates != nil {
			updates <- update
		}
	}

	return outcomes, summary, nil
}

// inspect sniffs one file and builds its outcome. On success the second
// return value replays the full content (prefix included) for
// archiving; on read failure it is nil and the outcome is degraded to
// unknown/unchanged.
func inspect(f *FileRecord) (Outcome, io.ReadCloser) {
	outcome := Outcome{
		OriginalPath: f.RelPath,
		Name:         baseName(f.RelPath),
		Kind:         imgutil.KindUnknown,
		Status:       StatusUnchanged,
		FinalPath:    f.RelPath,
	}

	rc, err := f.Open()
	if err != nil {
		return outcome, nil
	}

	header := make([]byte, imgutil.HeaderSize)
	n, err := io.ReadFull(rc, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		_ = rc.Close()
		return outcome, nil
	}

	outcome.Kind = imgutil.DetectHeader(header[:n])
	outcome.FinalPath, outcome.Status = Decide(f.RelPath, outcome.Kind)

	return outcome, replayReader{
		Reader: io.MultiReader(bytes.NewReader(header[:n]), rc),
		Closer: rc,
	}
}

type replayReader struct {
	io.Reader
	io.Closer
}
