// Package bump implements the bump-version pipeline: verify the
// repository is in a releasable state, derive the next version from
// the most recent tag, rewrite manifest versions, record a single bump
// commit, create an annotated tag and push everything upstream.
//
// The pipeline is strictly sequential and fail-fast: every git command
// and file rewrite must succeed before the next side effect happens,
// so an aborted run never leaves a tag pointing at uncommitted state.
package bump
