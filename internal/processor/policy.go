package processor

import (
	"strings"

	"packfix/pkg/imgutil"
)

// Decide computes the final relative path for a file given its detected
// kind. Unidentifiable content is never renamed. Only the last path
// segment can change; directory segments pass through verbatim.
func Decide(originalPath string, kind imgutil.Kind) (string, Status) {
	if kind == imgutil.KindUnknown {
		return originalPath, StatusUnchanged
	}

	segments := strings.Split(originalPath, "/")
	name := segments[len(segments)-1]

	if extMatches(currentExt(name), kind) {
		return originalPath, StatusUnchanged
	}

	segments[len(segments)-1] = stem(name) + "." + kind.Ext()
	return strings.Join(segments, "/"), StatusFixed
}

// currentExt returns the lower-cased extension of a file name, without
// the dot. A name with no dot has an empty extension.
func currentExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// stem returns the file name up to its last dot, or the whole name when
// there is no dot.
func stem(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return name
	}
	return name[:i]
}

func extMatches(ext string, kind imgutil.Kind) bool {
	if ext == kind.Ext() {
		return true
	}
	// "jpeg" is an accepted synonym for the canonical "jpg".
	return kind == imgutil.KindJPEG && ext == "jpeg"
}
