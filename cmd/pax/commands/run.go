package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [product] [-- arguments...]",
		Short: "Build and run an executable product",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			product, productArgs := splitRunArgs(cmd, args)
			tool, err := c.newTool(cmd)
			if err != nil {
				return err
			}
			return tool.Run(cmd.Context(), product, productArgs)
		},
	}
}

// splitRunArgs separates the product name from the arguments passed to it. Everything
// after "--" is passed to the product.
func splitRunArgs(cmd *cobra.Command, args []string) (string, []string) {
	dash := cmd.ArgsLenAtDash()
	if dash == 0 {
		return "", args
	}
	if len(args) == 0 {
		return "", nil
	}
	return args[0], args[1:]
}
