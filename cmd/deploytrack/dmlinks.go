package main

import (
	"fmt"

	"deploytrack/internal/core/formdata"
	dsvc "deploytrack/internal/services/api/dmlinks/service"

	"github.com/spf13/cobra"
)

func newDMLinksCmd() *cobra.Command {
	var mapping, host string
	cmd := &cobra.Command{
		Use:   "dmlinks <file>",
		Short: "List Data Manager links for every form_data_id in a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			svc := dsvc.Load(host, mapping)
			if info := svc.Mapping(cmd.Context()); info.Error != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", info.Error)
			}
			res, err := svc.Find(cmd.Context(), raw)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d ids, %d linked\n", res.Total, len(res.Resolved))
			for _, l := range res.Resolved {
				fmt.Fprintf(w, "%s  %s\n", l.ID, l.URL)
			}
			if len(res.Unresolved) > 0 {
				fmt.Fprintln(w, "missing from mapping:")
				for _, id := range res.Unresolved {
					fmt.Fprintf(w, "  %s\n", id)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mapping, "mapping", "indexed-data-managers.json", "form id to group mapping (json or yaml)")
	cmd.Flags().StringVar(&host, "host", formdata.DefaultHost, "Data Manager host for the links")
	return cmd
}
