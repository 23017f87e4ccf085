package main

import (
	"fmt"
	"sort"

	radvis "github.com/WPS/radvis"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRouteCmd() *cobra.Command {
	var (
		osmFileName    string
		configFileName string
		from           int64
		to             int64
	)
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Print edges along the shortest route between two OSM nodes together with their reconciled attributes",
		RunE: func(cmd *cobra.Command, args []string) error {
			netz, err := loadNetz(cmd.Context(), osmFileName, configFileName)
			if err != nil {
				return err
			}
			edges, err := netz.RouteSelection(radvis.KnotenID(from), radvis.KnotenID(to))
			if err != nil {
				return err
			}
			logger.Debug("route found", zap.Int("edges", len(edges)))
			fmt.Fprintf(cmd.OutOrStdout(), "from %d: %s\n", from, radvis.PrepareWKTPoint(netz.Knoten[radvis.KnotenID(from)].Point))
			fmt.Fprintf(cmd.OutOrStdout(), "to %d: %s\n", to, radvis.PrepareWKTPoint(netz.Knoten[radvis.KnotenID(to)].Point))
			for _, id := range edges {
				fmt.Fprintln(cmd.OutOrStdout(), netz.Kanten[id])
			}
			if len(edges) == 0 {
				return nil
			}
			segments, err := netz.SelectedSegments(edges, nil)
			if err != nil {
				return err
			}
			reconciled, err := radvis.ReconcileSegments(segments)
			if err != nil {
				return err
			}
			fields := make([]string, 0, len(reconciled))
			for field := range reconciled {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				value := reconciled[field]
				if value.Determined {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", field, value.Value)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: <undetermined>\n", field)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&osmFileName, "file", "my_graph.osm", "Filename of *.osm or *.osm.pbf file")
	cmd.Flags().StringVar(&configFileName, "config", "", "YAML import configuration (optional)")
	cmd.Flags().Int64Var(&from, "from", 0, "Source OSM node")
	cmd.Flags().Int64Var(&to, "to", 0, "Target OSM node")
	return cmd
}
