// Package git provides typed access to the git command line tool,
// covering the handful of operations a version bump needs: describe,
// branch and upstream queries, porcelain status, config reads, staging,
// committing, annotated tags and pushing.
//
// Every command targets an explicit repository directory via the -C
// flag, so nothing depends on the process working directory. The two
// "absent, not broken" outcomes (no tags reachable, no upstream
// configured) are modeled as a nil Description and the ErrNoUpstream
// sentinel rather than as failures.
package git
