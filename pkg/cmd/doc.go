// Package cmd implements the jobname command tree.
package cmd
