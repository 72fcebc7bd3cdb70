package processor

import "strings"

// ReservedDirPrefix is the archive metadata directory excluded from
// every batch, matched as a whole leading segment.
const ReservedDirPrefix = "__MACOSX"

// Filter drops dotfiles (any path segment starting with ".") and
// everything under the reserved metadata directory. Dropped files come
// back as StatusSkipped outcomes for display; they never reach the
// pipeline or the archive.
func Filter(files []FileRecord) (kept []FileRecord, skipped []Outcome) {
	for _, f := range files {
		if excluded(f.RelPath) {
			skipped = append(skipped, Outcome{
				OriginalPath: f.RelPath,
				Name:         baseName(f.RelPath),
				Status:       StatusSkipped,
				FinalPath:    f.RelPath,
			})
			continue
		}
		kept = append(kept, f)
	}
	return kept, skipped
}

func excluded(relPath string) bool {
	segments := strings.Split(relPath, "/")
	if segments[0] == ReservedDirPrefix {
		return true
	}
	for _, seg := range segments {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

func baseName(relPath string) string {
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		return relPath[i+1:]
	}
	return relPath
}
