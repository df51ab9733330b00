package oidtree

import (
	"fmt"
	"strconv"
	"strings"
)

// appendArc returns a new path made of parent followed by arc.
// The result never shares storage with parent.
func appendArc(parent []uint32, arc uint32) []uint32 {
	path := make([]uint32, len(parent), len(parent)+1)
	copy(path, parent)
	return append(path, arc)
}

func clonePath(path []uint32) []uint32 {
	if path == nil {
		return nil
	}
	result := make([]uint32, len(path))
	copy(result, path)
	return result
}

// FormatPath returns the dotted form of an OID, e.g. "1.3.6.1".
// Returns an empty string for an empty path.
func FormatPath(path []uint32) string {
	var b strings.Builder
	for i, arc := range path {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatUint(uint64(arc), 10))
	}
	return b.String()
}

// ParseOID parses a dotted OID string into arc values. A single leading dot
// is accepted (".1.3.6.1" and "1.3.6.1" are the same OID).
// Returns (nil, nil) for empty input.
func ParseOID(oid string) ([]uint32, error) {
	oid = strings.TrimPrefix(strings.TrimSpace(oid), ".")
	if oid == "" {
		return nil, nil
	}

	arcs := make([]uint32, 0, strings.Count(oid, ".")+1)
	for _, segment := range strings.Split(oid, ".") {
		if segment == "" {
			return nil, fmt.Errorf("invalid OID %q: empty component", oid)
		}
		// Reject leading zeros (e.g., "01", "007") - MIB convention
		if len(segment) > 1 && segment[0] == '0' {
			return nil, fmt.Errorf("invalid OID component %q: leading zeros not allowed", segment)
		}
		n, err := strconv.ParseUint(segment, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid OID component %q: %w", segment, err)
		}
		arcs = append(arcs, uint32(n))
	}
	return arcs, nil
}

// HasPrefix reports whether path starts with prefix.
func HasPrefix(path, prefix []uint32) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i, arc := range prefix {
		if path[i] != arc {
			return false
		}
	}
	return true
}
