package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/telekom/job-container-naming/pkg/naming"
)

func WriteContainerNameTable(w io.Writer, results []naming.Result) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "JOB ID\tCONTAINER\tHASHED")
	for _, r := range results {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", r.JobID, r.ContainerName, yesNo(r.Hashed))
	}
	_ = tw.Flush()
}

func WriteValidationTable(w io.Writer, results []naming.ValidationResult) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tVALID\tERRORS")
	for _, r := range results {
		errs := "-"
		if len(r.Errors) > 0 {
			errs = strings.Join(r.Errors, "; ")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, yesNo(r.Valid), errs)
	}
	_ = tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Print writes items with p, using table for the table format.
func (p *Printer) Print(w io.Writer, items any, table func(io.Writer)) error {
	switch p.Format {
	case FormatTable:
		table(w)
		return nil
	case FormatTemplate:
		return p.WriteTemplate(w, items)
	default:
		return WriteObject(w, p.Format, items)
	}
}
