// Package api implements the HTTP service that derives and validates job
// output container names.
package api
