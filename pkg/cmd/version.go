package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/job-container-naming/pkg/output"
	"github.com/telekom/job-container-naming/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show jobname version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetBuildInfo()

			// Get runtime if available (for custom writer), but don't fail if missing
			rt, _ := getRuntime(cmd)
			writer := cmd.OutOrStdout()
			if rt != nil {
				writer = rt.Writer()
			}

			switch outputFormat {
			case "json", "yaml":
				return output.WriteObject(writer, output.Format(outputFormat), info)
			case "":
				_, err := fmt.Fprintln(writer, info.String())
				return err
			default:
				return fmt.Errorf("unknown output format: %s", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: json, yaml")

	return cmd
}
