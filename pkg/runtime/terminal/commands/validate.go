package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forge-cloud/archplan/pkg/runtime/terminal/view"
)

// ValidateCmd checks AWS credentials against the generator.
type ValidateCmd struct {
	flags commonFlags
	deps  Deps
}

func NewValidateCmd(deps Deps) *cobra.Command {
	vc := &ValidateCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "validate-credentials",
		Short: "Validate AWS credentials against the generator",
		RunE:  vc.run,
	}

	vc.flags.register(cmd)
	return cmd
}

func (vc *ValidateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := vc.flags.loadConfig()
	if err != nil {
		return err
	}

	prompter := view.NewPrompter(vc.deps.In, vc.deps.Out)
	creds, err := resolveCredentials(ctx, &vc.flags, cfg, prompter)
	if err != nil {
		return err
	}

	check, err := newGateway(cfg).ValidateCredentials(ctx, creds)
	if err != nil {
		return fmt.Errorf("validation request failed: %w", err)
	}

	if !check.Valid {
		return fmt.Errorf("credentials invalid: %s", check.Error)
	}
	fmt.Fprintf(vc.deps.Out, "Credentials valid for account %s.\n", check.AccountID)
	return nil
}
