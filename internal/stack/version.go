package stack

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// NormalizeVersion reduces a declared version or range such as "^14.2.3",
// "~> 7.1" or ">=4.2,<5" to "major.minor". It returns "" when no concrete
// version can be read.
func NormalizeVersion(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	// first alternative or lower bound of a range
	raw, _, _ = strings.Cut(raw, "||")
	raw, _, _ = strings.Cut(raw, ",")
	raw, _, _ = strings.Cut(strings.TrimSpace(raw), " - ")
	raw = strings.TrimLeft(strings.TrimSpace(raw), "^~=<>! v")
	raw = strings.TrimSpace(raw)

	for _, wildcard := range []string{".x", ".*", ".X"} {
		raw = strings.TrimSuffix(raw, wildcard)
		raw = strings.TrimSuffix(raw, wildcard)
	}
	if fields := strings.Fields(raw); len(fields) > 0 {
		raw = fields[0]
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}
