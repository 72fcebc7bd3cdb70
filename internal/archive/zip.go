// Package archive assembles the final (path, content) pairs into a
// single compressed blob. Zip is handled natively by the standard
// library; entry names use forward slashes to encode directories.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
)

// Zip writes entries to a zip stream. Not safe for concurrent use; the
// pipeline feeds it sequentially.
type Zip struct {
	zw *zip.Writer
}

func NewZip(w io.Writer) *Zip {
	return &Zip{zw: zip.NewWriter(w)}
}

// Add creates an entry under path and copies content into it. Paths
// must be unique and forward-slash separated; the writer does not
// deduplicate.
func (z *Zip) Add(path string, content io.Reader) error {
	w, err := z.zw.Create(path)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", path, err)
	}
	if _, err := io.Copy(w, content); err != nil {
		return fmt.Errorf("write entry %s: %w", path, err)
	}
	return nil
}

// Close finalizes the central directory. The archive is unusable until
// Close returns nil.
func (z *Zip) Close() error {
	return z.zw.Close()
}
