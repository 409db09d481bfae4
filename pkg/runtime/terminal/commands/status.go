package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// StatusCmd fetches one status snapshot for a deployment job.
type StatusCmd struct {
	flags commonFlags
	deps  Deps
}

func NewStatusCmd(deps Deps) *cobra.Command {
	sc := &StatusCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "status <deployment-id>",
		Short: "Show the current status of a deployment",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.run,
	}

	sc.flags.register(cmd)
	return cmd
}

func (sc *StatusCmd) run(cmd *cobra.Command, args []string) error {
	cfg, err := sc.flags.loadConfig()
	if err != nil {
		return err
	}

	status, err := newGateway(cfg).GetDeploymentStatus(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch deployment status: %w", err)
	}

	fmt.Fprintf(sc.deps.Out, "Status: %s (%d%%)\n", status.Status, status.Progress)
	if status.CurrentStep != "" {
		fmt.Fprintf(sc.deps.Out, "Current step: %s\n", status.CurrentStep)
	}
	if status.EstimatedCompletion != "" {
		fmt.Fprintf(sc.deps.Out, "Estimated completion: %s\n", status.EstimatedCompletion)
	}
	for _, line := range status.Logs {
		fmt.Fprintf(sc.deps.Out, "  %s\n", line)
	}
	for _, e := range status.Errors {
		fmt.Fprintf(sc.deps.Out, "  error: %s\n", e)
	}
	return nil
}
