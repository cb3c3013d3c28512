package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/telekom/job-container-naming/pkg/naming"
	"github.com/telekom/job-container-naming/pkg/output"
)

// ErrInvalidNames is returned by validate when at least one name is invalid.
var ErrInvalidNames = errors.New("invalid container names")

func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate NAME...",
		Short: "Check container names against the blob container naming rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			printer, err := rt.Printer()
			if err != nil {
				return err
			}

			results := make([]naming.ValidationResult, 0, len(args))
			invalid := 0
			for _, name := range args {
				res := naming.Check(name)
				if !res.Valid {
					invalid++
				}
				results = append(results, res)
			}

			if err := printer.Print(rt.Writer(), results, func(w io.Writer) {
				output.WriteValidationTable(w, results)
			}); err != nil {
				return err
			}
			if invalid > 0 {
				return fmt.Errorf("%w: %d of %d", ErrInvalidNames, invalid, len(args))
			}
			return nil
		},
	}
}
