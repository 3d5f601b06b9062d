// Package version models the dotted numeric versions carried by git
// tags, such as "v1", "2.5" or "v0.3.17".
//
// A Version has one, two or three integer components and an optional
// "v" prefix. The component count is decided by Parse and fixed for the
// lifetime of the value; Increment always bumps the rightmost component
// that is present. Pre-release and build-metadata suffixes are not
// supported.
package version
