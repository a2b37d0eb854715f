// Package bytesize provides human-friendly byte size parsing and formatting.
package bytesize

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// binaryUnits rewrites bare unit suffixes to their 1024-based spelling.
var binaryUnits = []struct{ from, to string }{
	{"TB", "TiB"},
	{"GB", "GiB"},
	{"MB", "MiB"},
	{"KB", "KiB"},
}

// Parse parses a human-friendly byte size string.
//
// KB, MB, GB and TB are 1024-based, the same as KiB, MiB, GiB and TiB.
// A bare number is a byte count.
//
// Examples:
//
//	Parse("250MB")     // 262144000 bytes
//	Parse("50MiB")     // 52428800 bytes
//	Parse("1.5GB")     // 1610612736 bytes
//	Parse("262144000") // 262144000 bytes
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("invalid size %q: negative value not allowed", s)
	}

	normalized := strings.ToUpper(s)
	for _, u := range binaryUnits {
		if strings.HasSuffix(normalized, u.from) {
			normalized = strings.TrimSuffix(normalized, u.from) + u.to
			break
		}
	}

	n, err := humanize.ParseBytes(normalized)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("size %q exceeds maximum allowed value", s)
	}

	return int64(n), nil
}

// Format renders n bytes with 1024-based units, e.g. "12 MiB".
func Format(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
