// Package apiresponses provides the JSON error envelope and response helpers
// shared by all HTTP handlers.
package apiresponses
