package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "dummy-data",
		Short: "Generate or remove dummy catalog data in a Reaction shop",
		Long: `dummy-data asks a Reaction Commerce API to generate products, tags,
orders and product images for a shop, or to remove all of that data.

Run without arguments to open the interactive screen.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML config file (env vars override it)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newProductsCmd(flags),
		newOrdersCmd(flags),
		newImagesCmd(flags),
		newRemoveCmd(flags),
		newHistoryCmd(flags),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
