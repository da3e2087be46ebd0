// Package config loads the brainmapper run configuration from a JSON
// document, rejects documents whose keys fall outside the static schema,
// resolves the input plane files (fetching a remote archive when the data is
// not on disk), and derives the timestamped output paths every pipeline
// stage writes to.
//
// The Config is built once per run and is read-only afterwards; nothing in
// it outlives a single invocation.
package config
