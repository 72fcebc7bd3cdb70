package processor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packfix/pkg/imgutil"
)

var (
	pngBytes = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52}
	gifBytes = []byte("GIF89a\x01\x00\x01\x00\x00\x00")
	rawBytes = []byte{0x00, 0x01, 0x02, 0x03}
)

func memRecord(relPath string, content []byte) FileRecord {
	return FileRecord{
		RelPath: relPath,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

type archiveEntry struct {
	path    string
	content []byte
}

// recordingAssembler captures Add calls for assertions.
type recordingAssembler struct {
	entries []archiveEntry
	addErr  error
	closed  bool
}

func (a *recordingAssembler) Add(path string, content io.Reader) error {
	if a.addErr != nil {
		return a.addErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	a.entries = append(a.entries, archiveEntry{path: path, content: data})
	return nil
}

func (a *recordingAssembler) Close() error {
	a.closed = true
	return nil
}

func TestRunEndToEnd(t *testing.T) {
	files := []FileRecord{
		memRecord("a.png", pngBytes),
		memRecord("b.jpg", gifBytes),
		memRecord("c.dat", rawBytes),
	}
	dst := &recordingAssembler{}

	outcomes, summary, err := Run(context.Background(), files, Options{Mode: ModePack}, dst, nil)
	require.NoError(t, err)

	require.Len(t, outcomes, 3)
	assert.Equal(t, Outcome{
		OriginalPath: "a.png", Name: "a.png",
		Kind: imgutil.KindPNG, Status: StatusUnchanged, FinalPath: "a.png",
	}, outcomes[0])
	assert.Equal(t, Outcome{
		OriginalPath: "b.jpg", Name: "b.jpg",
		Kind: imgutil.KindGIF, Status: StatusFixed, FinalPath: "b.gif",
	}, outcomes[1])
	assert.Equal(t, Outcome{
		OriginalPath: "c.dat", Name: "c.dat",
		Kind: imgutil.KindUnknown, Status: StatusUnchanged, FinalPath: "c.dat",
	}, outcomes[2])

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 1, summary.Fixed)
	assert.False(t, summary.Started.IsZero())

	require.Len(t, dst.entries, 3)
	assert.Equal(t, archiveEntry{"a.png", pngBytes}, dst.entries[0])
	assert.Equal(t, archiveEntry{"b.gif", gifBytes}, dst.entries[1])
	assert.Equal(t, archiveEntry{"c.dat", rawBytes}, dst.entries[2])
}

func TestRunDeterministic(t *testing.T) {
	build := func() []FileRecord {
		return []FileRecord{
			memRecord("album/sub/pic.png", gifBytes),
			memRecord("IMG_001", pngBytes),
			memRecord("photo.jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46, 0x49, 0x46}),
		}
	}

	first := &recordingAssembler{}
	second := &recordingAssembler{}

	outcomes1, _, err := Run(context.Background(), build(), Options{Mode: ModePack}, first, nil)
	require.NoError(t, err)
	outcomes2, _, err := Run(context.Background(), build(), Options{Mode: ModePack}, second, nil)
	require.NoError(t, err)

	assert.Equal(t, outcomes1, outcomes2)
	assert.Equal(t, first.entries, second.entries)
	assert.Equal(t, "album/sub/pic.gif", first.entries[0].path)
	assert.Equal(t, "IMG_001.png", first.entries[1].path)
	assert.Equal(t, "photo.jpeg", first.entries[2].path)
}

func TestRunPerFileReadFailureContinues(t *testing.T) {
	files := []FileRecord{
		memRecord("a.png", pngBytes),
		{RelPath: "broken.jpg", Open: func() (io.ReadCloser, error) {
			return nil, errors.New("source unavailable")
		}},
		memRecord("b.jpg", gifBytes),
	}
	dst := &recordingAssembler{}
	updates := make(chan ProgressUpdate, 8)

	outcomes, summary, err := Run(context.Background(), files, Options{Mode: ModePack}, dst, updates)
	require.NoError(t, err)

	require.Len(t, outcomes, 3)
	assert.Equal(t, imgutil.KindUnknown, outcomes[1].Kind)
	assert.Equal(t, StatusUnchanged, outcomes[1].Status)
	assert.Equal(t, "broken.jpg", outcomes[1].FinalPath)

	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 1, summary.Fixed)

	// The unreadable file has no bytes to archive.
	require.Len(t, dst.entries, 2)
	assert.Equal(t, "a.png", dst.entries[0].path)
	assert.Equal(t, "b.gif", dst.entries[1].path)

	close(updates)
	var processed, fixed int
	for u := range updates {
		processed += u.ProcessedDelta
		fixed += u.FixedDelta
		require.NotNil(t, u.Outcome)
	}
	assert.Equal(t, 3, processed)
	assert.Equal(t, 1, fixed)
}

func TestRunEmptyInput(t *testing.T) {
	_, _, err := Run(context.Background(), nil, Options{Mode: ModePack}, &recordingAssembler{}, nil)
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestRunDuplicateFinalPath(t *testing.T) {
	files := []FileRecord{
		memRecord("a.png", pngBytes),
		memRecord("a.jpg", pngBytes), // renames to a.png
	}

	_, _, err := Run(context.Background(), files, Options{Mode: ModePack}, &recordingAssembler{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate archive path")
}

func TestRunAssemblerFailureIsFatal(t *testing.T) {
	files := []FileRecord{memRecord("a.png", pngBytes)}
	dst := &recordingAssembler{addErr: errors.New("disk full")}

	_, _, err := Run(context.Background(), files, Options{Mode: ModePack}, dst, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive a.png")
}

func TestRunScanModeTouchesNoAssembler(t *testing.T) {
	files := []FileRecord{
		memRecord("b.jpg", gifBytes),
		memRecord("c.dat", rawBytes),
	}

	outcomes, summary, err := Run(context.Background(), files, Options{Mode: ModeScan}, nil, nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, StatusFixed, outcomes[0].Status)
	assert.Equal(t, "b.gif", outcomes[0].FinalPath)
	assert.Equal(t, 1, summary.Fixed)
}

func TestRunCancelledBetweenFiles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := []FileRecord{memRecord("a.png", pngBytes)}
	outcomes, _, err := Run(ctx, files, Options{Mode: ModeScan}, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
}
