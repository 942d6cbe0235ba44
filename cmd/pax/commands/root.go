// Package commands implements the CLI commands for the pax build tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pax/internal/app"
	"go.trai.ch/pax/internal/build"
	"go.trai.ch/pax/internal/engine/params"
)

// CLI represents the command line interface for pax.
type CLI struct {
	components *app.Components
	toolOpts   []app.Option
	flags      *globalFlags
	tool       *app.Tool
	rootCmd    *cobra.Command
}

// configurableLogger is implemented by loggers whose output can be tuned from flags.
type configurableLogger interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given components. Tool options are passed on
// to the tool created for the invoked command.
func New(components *app.Components, toolOpts ...app.Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pax",
		Short:         "Build, run and resolve packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	c := &CLI{
		components: components,
		toolOpts:   toolOpts,
		flags:      newGlobalFlags(),
		rootCmd:    rootCmd,
	}
	c.flags.register(rootCmd.PersistentFlags())

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newGenerateIDEProjectCmd())
	rootCmd.AddCommand(c.newDescribeToolchainCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context and closes the tool of the
// invoked command afterwards.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()
	if c.tool != nil {
		if closeErr := c.tool.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// newTool creates the tool for the invoked command from the global flags.
func (c *CLI) newTool(cmd *cobra.Command) (*app.Tool, error) {
	if l, ok := c.components.Logger.(configurableLogger); ok {
		l.SetVerbose(c.flags.verbose)
		l.SetJSON(c.flags.logJSON)
	}

	opts, getenv, err := c.flags.options(cmd.Flags(), c.components.Logger)
	if err != nil {
		return nil, err
	}

	toolOpts := append([]app.Option{app.WithParamsOptions(params.WithGetenv(getenv))}, c.toolOpts...)
	tool, err := app.New(c.components, opts, toolOpts...)
	if err != nil {
		return nil, err
	}
	c.tool = tool
	return tool, nil
}
