package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/whattodo/internal/model"
	"github.com/spf13/cobra"
)

func modesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "Show how each field is compared",
		Long: `Show the comparison mode of every field after applying configuration,
environment and flags.

inclusive  the filter value is a bound: less demanding activities also match
exclusive  the activity's value must equal the filter value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy, err := policyFromFlags(cmd)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FIELD\tMODE\tVALUES")
			for _, f := range model.Fields() {
				fmt.Fprintf(tw, "%s\t%s\t%v\n", f.Name(), policy.Mode(f), f.Values())
			}
			return tw.Flush()
		},
	}

	addPolicyFlags(cmd)

	return cmd
}
