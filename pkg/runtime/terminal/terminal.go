// Package terminal is the interactive front end of the architecture
// workflow: the cobra CLI, the wizard prompter, and the review reporters.
package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/forge-cloud/archplan/pkg/runtime/terminal/commands"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Input  io.Reader
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{}
	cli.rootCmd = cli.newRootCmd(commands.Deps{
		In:  opts.Input,
		Out: opts.Output,
	})
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(deps commands.Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archplan",
		Short: "AWS architecture generator client",
	}

	cmd.AddCommand(commands.NewCreateCmd(deps))
	cmd.AddCommand(commands.NewImportCmd(deps))
	cmd.AddCommand(commands.NewStatusCmd(deps))
	cmd.AddCommand(commands.NewValidateCmd(deps))

	return cmd
}
