package koji

import (
	"fmt"
	"slices"
	"strings"
)

// VerificationError is returned by ImportInfoBuilder.Build when required
// fields are absent. Missing holds every path, sorted.
type VerificationError struct {
	Missing []string
}

// Error lists every missing path.
func (e *VerificationError) Error() string {
	if len(e.Missing) == 0 {
		return "verification failed"
	}
	return fmt.Sprintf("verification failed, %d missing propert%s:\n  - %s",
		len(e.Missing), plural(len(e.Missing)), strings.Join(e.Missing, "\n  - "))
}

// Has reports whether path is among the missing paths.
func (e *VerificationError) Has(path string) bool {
	_, found := slices.BinarySearch(e.Missing, path)
	return found
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
