// Package config loads the jobname YAML configuration file shared by the CLI
// and the HTTP service.
package config
