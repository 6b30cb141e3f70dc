package archivefs

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize rewrites an incoming archive entry name into its canonical form:
// backslashes are treated as separators, Unicode is NFC-normalized so that
// NFD-decomposed names (as produced by some filesystems) compare equal to
// their NFC counterparts, runs of separators are collapsed, "." segments are
// dropped, and ".." segments pop the preceding segment unless none remains,
// in which case the ".." is preserved. The result uses "/" exclusively.
func Normalize(path string) string {
	path = norm.NFC.String(path)
	path = strings.ReplaceAll(path, "\\", "/")

	leadingSlash := strings.HasPrefix(path, "/")

	segments := strings.Split(path, "/")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		switch segment {
		case "", ".":
			continue
		case "..":
			if n := len(out); n > 0 && out[n-1] != ".." {
				out = out[:n-1]
			} else {
				out = append(out, "..")
			}
		default:
			out = append(out, segment)
		}
	}

	result := strings.Join(out, "/")
	if leadingSlash {
		result = "/" + result
	}
	return result
}

// CutTrailingSeparators removes any trailing "/" from path, unless path is
// exactly "/", which becomes "" (the root path).
func CutTrailingSeparators(path string) string {
	if path == "/" {
		return ""
	}
	for len(path) > 0 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}

// Split splits path on its last "/" into a parent and a base name. If path
// contains no separator, the parent is the root path ("").
func Split(path string) (parent, base string) {
	if idx := strings.LastIndexByte(path, '/'); idx != -1 {
		return path[:idx], path[idx+1:]
	}
	return "", path
}

// IsRoot reports whether path is the root path.
func IsRoot(path string) bool {
	return path == ""
}

// Canonical runs the full incoming-name pipeline used by the populated
// constructor: backslash rewriting, normalization, and trailing-separator
// removal.
func Canonical(name string) string {
	return CutTrailingSeparators(Normalize(strings.ReplaceAll(name, "\\", "/")))
}
