package main

import (
	"encoding/json"
	"os"

	radvis "github.com/WPS/radvis"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile FILE",
		Short: "Reconcile JSON array of attribute objects into shared or undetermined values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "Can't read entities")
			}
			entities := []radvis.Attributes{}
			if err := json.Unmarshal(b, &entities); err != nil {
				return errors.Wrap(err, "Can't parse entities")
			}
			logger.Debug("entities loaded", zap.Int("entities", len(entities)))
			reconciled, err := radvis.Reconcile(entities)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reconciled)
		},
	}
}
