package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/telekom/job-container-naming/pkg/naming"
	"github.com/telekom/job-container-naming/pkg/output"
)

func NewDeriveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "derive JOB_ID...",
		Short: "Print the output container name for each job id",
		Example: `  jobname derive nightly-build "Release_2024.01"
  jobname derive -o json MyJob
  jobname derive -o 'go-template={{.containerName}}' MyJob`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			deriver, alg, err := rt.Deriver()
			if err != nil {
				return err
			}
			printer, err := rt.Printer()
			if err != nil {
				return err
			}
			log, err := rt.Logger()
			if err != nil {
				return err
			}

			results := make([]naming.Result, 0, len(args))
			for i, id := range args {
				res, err := deriver.Resolve(id)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				log.Sugar().Debugw("Derived container name", "jobID", id, "container", res.ContainerName,
					"hashed", res.Hashed, "algorithm", alg)
				results = append(results, res)
			}

			return printer.Print(rt.Writer(), results, func(w io.Writer) {
				output.WriteContainerNameTable(w, results)
			})
		},
	}
}
