package version

import (
	"fmt"
	"strconv"
	"strings"
)

// maxComponents is the largest number of dotted components a version
// may carry.
const maxComponents = 3

// ParseError reports a string that could not be parsed as a version.
type ParseError struct {
	// Input is the offending string.
	Input string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %q as version", e.Input)
}

// Version is a dotted numeric version with an optional "v" prefix,
// for example "1", "v1.2" or "v0.3.17". The component count is fixed
// when the value is parsed and never changes afterwards: Increment
// bumps the least significant component that is present and never
// carries into more significant ones.
//
// Version is a value type, so copies are independent. The two mutating
// methods, SetPrefix and Increment, use pointer receivers.
type Version struct {
	// components holds the numeric components;
	// only the first arity entries are meaningful.
	components [maxComponents]int
	// arity is the number of components present, between 1 and 3.
	arity int
	// hasPrefix records whether the canonical form starts with "v".
	hasPrefix bool
}

// Parse converts a string such as "v1.2.3" into a Version. A leading
// "v" sets the prefix flag and is not part of the components. The rest
// must be one to three dot-separated non-negative integers; anything
// else fails with a *ParseError.
func Parse(s string) (Version, error) {
	rest, hasPrefix := strings.CutPrefix(s, "v")

	parts := strings.Split(rest, ".")
	if len(parts) > maxComponents {
		return Version{}, &ParseError{Input: s}
	}

	v := Version{
		arity:     len(parts),
		hasPrefix: hasPrefix,
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, &ParseError{Input: s}
		}

		v.components[i] = n
	}

	return v, nil
}

// MustParse is Parse for known-good inputs such as package-level
// defaults; it panics when the input does not parse.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return v
}

// String renders the canonical form: the optional "v" prefix followed
// by the components joined with dots. Parse(v.String()) reproduces v
// exactly.
func (v Version) String() string {
	prefix := ""
	if v.hasPrefix {
		prefix = "v"
	}

	switch v.arity {
	case 1:
		return fmt.Sprintf("%s%d", prefix, v.components[0])
	case 2:
		return fmt.Sprintf("%s%d.%d", prefix, v.components[0], v.components[1])
	default:
		return fmt.Sprintf("%s%d.%d.%d", prefix, v.components[0], v.components[1], v.components[2])
	}
}

// SetPrefix turns the "v" prefix on or off
// without touching the numeric components.
func (v *Version) SetPrefix(value bool) {
	v.hasPrefix = value
}

// Increment bumps the least significant component that is present: the
// sole component of a one-component version, the second of a pair, the
// third of a triple. More significant components, the component count
// and the prefix flag are left untouched; there is no carrying.
func (v *Version) Increment() {
	v.components[v.arity-1]++
}

// Dupe returns an independent copy of the version.
// Mutating the copy leaves the original untouched.
func (v Version) Dupe() Version {
	return v
}
