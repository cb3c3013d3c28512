// Package naming derives storage container names for batch jobs. A job id is
// mapped to a name that is valid for the blob container grammar, unique per
// case-insensitive job id and stable across runs without any external state.
package naming
