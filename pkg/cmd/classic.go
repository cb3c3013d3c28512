package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/job-container-naming/pkg/naming"
)

func NewClassicCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classic RESOURCE_ID",
		Short: "Report whether a storage account resource id is a classic account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(rt.Writer(), naming.IsClassicStorageAccount(args[0]))
			return err
		},
	}
}
