// Package ratelimit provides per-client rate limiting middleware for the HTTP service.
package ratelimit
