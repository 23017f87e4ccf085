package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	radvis "github.com/WPS/radvis"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func loadNetz(ctx context.Context, osmFileName, configFileName string) (*radvis.Netz, error) {
	cfg := radvis.DefaultImportConfig()
	if configFileName != "" {
		loaded, err := radvis.LoadImportConfig(configFileName)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return radvis.ReadOSM(ctx, osmFileName, cfg, logger)
}

func newExportCmd() *cobra.Command {
	var (
		osmFileName    string
		configFileName string
		geomFormat     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Import edges from OSM file and print their attribute segments",
		RunE: func(cmd *cobra.Command, args []string) error {
			netz, err := loadNetz(cmd.Context(), osmFileName, configFileName)
			if err != nil {
				return err
			}
			if strings.ToLower(geomFormat) == "geojson" {
				fc, err := radvis.SegmentsFeatureCollection(netz.SortedKanten()...)
				if err != nil {
					return err
				}
				b, err := fc.MarshalJSON()
				if err != nil {
					return errors.Wrap(err, "Can't marshal feature collection")
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			return writeSegmentsCSV(cmd, netz)
		},
	}
	cmd.Flags().StringVar(&osmFileName, "file", "my_graph.osm", "Filename of *.osm or *.osm.pbf file")
	cmd.Flags().StringVar(&configFileName, "config", "", "YAML import configuration (optional)")
	cmd.Flags().StringVar(&geomFormat, "geomf", "wkt", "Format of output geometry. Expected values: wkt / geojson")
	return cmd
}

// writeSegmentsCSV writes one row per segment:
//
//	kante_id;version;segment;von;bis;von_meter;bis_meter;attributes;geom
func writeSegmentsCSV(cmd *cobra.Command, netz *radvis.Netz) error {
	writer := csv.NewWriter(cmd.OutOrStdout())
	defer writer.Flush()
	writer.Comma = ';'

	err := writer.Write([]string{"kante_id", "version", "segment", "von", "bis", "von_meter", "bis_meter", "attributes", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, kante := range netz.SortedKanten() {
		ranges, err := kante.MetricRanges()
		if err != nil {
			return errors.Wrapf(err, "Can't convert ranges of edge %d", kante.ID)
		}
		for i, seg := range kante.Segments {
			geom, err := kante.SegmentGeometry(seg.LinearReference)
			if err != nil {
				return err
			}
			err = writer.Write([]string{
				fmt.Sprintf("%d", kante.ID),
				fmt.Sprintf("%d", kante.Version),
				fmt.Sprintf("%d", i),
				fmt.Sprintf("%f", seg.LinearReference.Von),
				fmt.Sprintf("%f", seg.LinearReference.Bis),
				fmt.Sprintf("%f", ranges[i].Von),
				fmt.Sprintf("%f", ranges[i].Bis),
				formatAttributes(seg.Attributes),
				radvis.PrepareWKTLinestring(geom),
			})
			if err != nil {
				return errors.Wrap(err, "Can't write segment")
			}
		}
	}
	return nil
}

func formatAttributes(attrs radvis.Attributes) string {
	fields := attrs.Fields()
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s=%v", field, attrs[field])
	}
	return strings.Join(parts, ",")
}
