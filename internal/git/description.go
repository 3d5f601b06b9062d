package git

import (
	"strconv"
	"strings"
)

// descriptionFieldCount is the number of hyphen-separated fields in a
// descriptor that carries an offset, as in "v0.0.21-1-gdf3eff3".
const descriptionFieldCount = 3

// Offset describes how far HEAD has moved past the most recent tag.
type Offset struct {
	// Commit is the abbreviated object name as printed by git
	// describe, for example "gdf3eff3".
	Commit string
	// Count is the number of commits since the tag.
	Count int
}

// Description is the parsed output of git describe: the most recent
// reachable tag plus, when HEAD is not exactly at that tag, the offset
// to it.
type Description struct {
	// Raw is the descriptor exactly as git printed it.
	Raw string
	// Tag is the most recent reachable tag name.
	Tag string
	// Offset is nil when HEAD sits exactly at the tag.
	Offset *Offset
}

// ParseDescription parses a git describe descriptor. The descriptor is
// either "TAG" or "TAG-COUNT-COMMIT" with exactly three
// hyphen-separated fields; empty input or any other shape yields nil.
func ParseDescription(s string) *Description {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, "-")
	switch len(parts) {
	case 1:
		return &Description{
			Raw: s,
			Tag: parts[0],
		}
	case descriptionFieldCount:
		count, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil
		}

		return &Description{
			Raw: s,
			Tag: parts[0],
			Offset: &Offset{
				Commit: parts[2],
				Count:  count,
			},
		}
	default:
		return nil
	}
}
