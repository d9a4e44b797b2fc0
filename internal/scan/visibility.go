package scan

import (
	"strings"

	"github.com/apidex-dev/apidex/internal/symbol"
)

// annotationLookback is how many original-file lines above a declaration
// are searched for an "@api public" / "@api private" override.
const annotationLookback = 6

// DefaultVisibility resolves the path-based visibility default: public when
// the slash-separated relative path contains an "include" or "public"
// directory segment, private otherwise.
func DefaultVisibility(relPath string) symbol.Visibility {
	p := strings.TrimPrefix(relPath, "./")
	if strings.Contains(p, "/include/") || strings.Contains(p, "/public/") ||
		strings.HasPrefix(p, "include/") || strings.HasPrefix(p, "public/") {
		return symbol.VisPublic
	}
	return symbol.VisPrivate
}

// annotationVisibility scans the original-file lines strictly above
// lineStart, nearest first, at most annotationLookback lines back, for an
// "@api public" or "@api private" annotation. The declaration's own line is
// never consulted; the nearest annotation wins.
func annotationVisibility(rawLines []string, lineStart int) (symbol.Visibility, bool) {
	low := lineStart - 1 - annotationLookback
	if low < 0 {
		low = 0
	}
	for i := lineStart - 2; i >= low; i-- {
		if i >= len(rawLines) {
			continue
		}
		if strings.Contains(rawLines[i], "@api public") {
			return symbol.VisPublic, true
		}
		if strings.Contains(rawLines[i], "@api private") {
			return symbol.VisPrivate, true
		}
	}
	return symbol.VisPrivate, false
}

// resolveVisibility combines the path default with the annotation override.
// Evaluated once per symbol at extraction time; never recomputed.
func resolveVisibility(rawLines []string, lineStart int, pathDefault symbol.Visibility) symbol.Visibility {
	if vis, ok := annotationVisibility(rawLines, lineStart); ok {
		return vis
	}
	return pathDefault
}
