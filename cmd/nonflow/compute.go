package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/RMahshie/nonflow/internal/process"
	"github.com/RMahshie/nonflow/internal/processing"
	"github.com/RMahshie/nonflow/internal/thermo"
	"github.com/RMahshie/nonflow/internal/trajectory"
)

type computeOptions struct {
	process string
	t0      float64
	v0      float64
	points  int
	index   float64
	fluid   string
	model   string
	ratio   float64
	format  string
}

func newComputeCmd() *cobra.Command {
	opts := computeOptions{}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the state points of one process",
		Example: `  nonflow compute --process adiabatic --t0 300 --v0 1 --points 10
  nonflow compute --process polytropic --n 1.3 --fluid nitrogen --model peng_robinson --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := processing.Query{
				ProcessKey: opts.process,
				T0:         opts.t0,
				V0:         opts.v0,
				NPoints:    opts.points,
				Fluid:      opts.fluid,
				Model:      opts.model,
			}
			if cmd.Flags().Changed("n") {
				q.Index = &opts.index
			}

			svc := processing.NewProcessingService(processing.Settings{SpanRatio: opts.ratio}, nil, nil, nil, nil)
			res, err := svc.ComputeTrajectory(cmd.Context(), q)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.process, "process", string(process.Isothermal), "Process: constant_volume, constant_pressure, isothermal, adiabatic or polytropic")
	f.Float64Var(&opts.t0, "t0", 300, "Initial temperature in K")
	f.Float64Var(&opts.v0, "v0", 1.0, "Initial specific volume in m³/kg")
	f.IntVar(&opts.points, "points", 20, fmt.Sprintf("Number of state points (%d-%d)", trajectory.MinPoints, trajectory.MaxPoints))
	f.Float64Var(&opts.index, "n", 0, "Polytropic index (required for polytropic)")
	f.StringVar(&opts.fluid, "fluid", thermo.DefaultFluid, "Working fluid")
	f.StringVar(&opts.model, "model", thermo.ModelIdealGas, "Property model: ideal or peng_robinson")
	f.Float64Var(&opts.ratio, "ratio", process.DefaultSpanRatio, "Ratio of the last to the first swept value")
	f.StringVar(&opts.format, "format", "table", "Output format: table, json or csv")

	return cmd
}

func render(w io.Writer, format string, res *processing.Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(processing.ToRecords(res.Points))
	case "csv":
		return trajectory.WriteCSV(w, res.Points)
	case "table":
		return renderTable(w, res)
	default:
		return fmt.Errorf("unknown format %q: expected table, json or csv", format)
	}
}

func renderTable(w io.Writer, res *processing.Result) error {
	fmt.Fprintf(w, "%s process, %s (%s)\n\n", res.Kind, res.Fluid, res.Model)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tT [K]\tP [Pa]\tv [m³/kg]\ts [kJ/(kg·K)]\t")
	for i, p := range res.Points {
		fmt.Fprintf(tw, "%d\t%.2f\t%.1f\t%.5f\t%.5f\t\n", i+1, p.T, p.P, p.V, p.S)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := res.Summary
	fmt.Fprintf(w, "\nT: %.2f → %.2f K\n", s.T.Min, s.T.Max)
	fmt.Fprintf(w, "P: %.1f → %.1f Pa\n", s.P.Min, s.P.Max)
	fmt.Fprintf(w, "v: %.5f → %.5f m³/kg\n", s.V.Min, s.V.Max)
	return nil
}
