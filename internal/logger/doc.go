// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger writing to stderr, so stdout stays
//     reserved for command output,
//   - brief and detailed console profiles (the detailed one adds
//     timestamps and caller locations),
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// All commands accept a context and extract the logger from it, enabling
// scoped, structured logging throughout the codebase.
package logger
