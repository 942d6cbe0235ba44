package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Resolve package dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tool, err := c.newTool(cmd)
			if err != nil {
				return err
			}
			return tool.Resolve(cmd.Context())
		},
	}
}

func (c *CLI) newGenerateIDEProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-ide-project",
		Short: "Generate IDE project files for the root packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tool, err := c.newTool(cmd)
			if err != nil {
				return err
			}
			return tool.GenerateIDEProject(cmd.Context())
		},
	}
}
