package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/RMahshie/nonflow/internal/thermo"
)

func newFluidsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fluids",
		Short: "List the working fluid catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			fluids, err := thermo.Fluids()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tM [kg/kmol]\tR [J/(kg·K)]\tγ\tTc [K]\tPc [MPa]\tT range [K]")
			for _, f := range fluids {
				fmt.Fprintf(tw, "%s\t%.4f\t%.2f\t%.3f\t%.2f\t%.3f\t%g-%g\n",
					f.Name, f.MolarMass, f.R(), f.Gamma, f.CriticalTemperature, f.CriticalPressure/1e6, f.TMin, f.TMax)
			}
			return tw.Flush()
		},
	}
}
