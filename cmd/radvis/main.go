package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "radvis",
		Short: "Linear referenced attribute segments of a bicycle network",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print progress information")
	rootCmd.AddCommand(
		newConvertCmd(),
		newReconcileCmd(),
		newExportCmd(),
		newRouteCmd(),
	)
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
