package main

import (
	"fmt"

	radvis "github.com/WPS/radvis"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var (
		length float64
		von    float64
		bis    float64
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert ranges between fractions of an edge and meters",
	}
	cmd.PersistentFlags().Float64Var(&length, "length", 0, "Edge length (meters)")
	cmd.PersistentFlags().Float64Var(&von, "von", 0, "Range start")
	cmd.PersistentFlags().Float64Var(&bis, "bis", 1, "Range end")

	cmd.AddCommand(&cobra.Command{
		Use:   "to-metric",
		Short: "Fractions -> meters",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := radvis.NewFractionalRange(von, bis)
			if err != nil {
				return err
			}
			metric, err := radvis.ToMetric(r, length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), metric)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "to-fractional",
		Short: "Meters -> fractions",
		RunE: func(cmd *cobra.Command, args []string) error {
			metric := radvis.MetricRange{Von: von, Bis: bis}
			if err := metric.Validate(); err != nil {
				return err
			}
			r, err := radvis.ToFractional(metric, length)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d digits)\n", r, radvis.FractionDigits(length))
			return nil
		},
	})
	return cmd
}
