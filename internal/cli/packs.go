package cli

import (
	"fmt"

	"github.com/Domenick1991/pestbooking/internal/catalog"
	"github.com/spf13/cobra"
)

func newPacksCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "packs",
		Short: "List the configured service packs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			packs, err := catalog.New(cfg.Packs, cfg.Booking.DefaultPack)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range packs.All() {
				marker := " "
				if p.Slug == cfg.Booking.DefaultPack {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-16s %s (%s)\n", marker, p.Slug, p.Name, p.Duration)
			}
			return nil
		},
	}
}
