package root

import (
	"github.com/spf13/cobra"

	"github.com/inpefess/vampire/cmd/prove"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vampire",
		Short: "A saturation theorem prover for first-order logic with equality",
		Long: `A saturation-based theorem prover for first-order logic with equality,
built around a given-clause loop over term-indexed clause containers.`,
	}

	// add sub-commands
	rootCmd.AddCommand(prove.NewProveCommand())

	return rootCmd
}
