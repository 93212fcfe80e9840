package cli

import (
	"fmt"

	"github.com/Domenick1991/pestbooking/internal/domain"
	"github.com/Domenick1991/pestbooking/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	values := make(map[domain.Field]*string, len(domain.AllFields()))

	c := &cobra.Command{
		Use:   "validate",
		Short: "Run the booking form rules against the given field values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var draft domain.Draft
			for f, v := range values {
				draft.Set(f, *v)
			}

			errs := validation.Validate(draft)
			out := cmd.OutOrStdout()
			if len(errs) == 0 {
				fmt.Fprintln(out, "ok")
				return nil
			}
			for _, f := range domain.RequiredFields() {
				if msg, ok := errs[f]; ok {
					fmt.Fprintf(out, "%s: %s\n", f, msg)
				}
			}
			return fmt.Errorf("%d invalid field(s)", len(errs))
		},
	}
	for _, f := range domain.AllFields() {
		values[f] = c.Flags().String(string(f), "", fmt.Sprintf("value of the %q field", f))
	}
	return c
}
