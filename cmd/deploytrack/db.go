package main

import (
	"fmt"

	compmod "deploytrack/internal/services/api/components/module"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, _, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close(cmd.Context()) }()
			fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", st.Dialect)
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample components into an empty inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, deps, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close(cmd.Context()) }()

			n, err := compmod.New(deps).Seed(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "inventory not empty, nothing seeded")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d components\n", n)
			return nil
		},
	}
}
