package processor

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Collect walks root and returns one FileRecord per regular file, in
// walk order, with forward-slash relative paths. A root that is itself
// a regular file yields a single record named after its base.
func Collect(root string) ([]FileRecord, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []FileRecord{fileRecord(absRoot, filepath.Base(absRoot))}, nil
	}

	var records []FileRecord
	fsys := os.DirFS(absRoot)
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		records = append(records, fileRecord(filepath.Join(absRoot, filepath.FromSlash(path)), path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func fileRecord(fullPath, relPath string) FileRecord {
	return FileRecord{
		RelPath: relPath,
		Open: func() (io.ReadCloser, error) {
			return os.Open(fullPath)
		},
	}
}
