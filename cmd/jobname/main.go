package main

import (
	"fmt"
	"os"

	jobnamecmd "github.com/telekom/job-container-naming/pkg/cmd"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := jobnamecmd.NewRootCommand(jobnamecmd.DefaultConfig())
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
