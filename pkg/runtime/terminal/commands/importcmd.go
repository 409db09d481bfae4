package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forge-cloud/archplan/pkg/models/domain"
	"github.com/forge-cloud/archplan/pkg/runtime/terminal/view"
	"github.com/forge-cloud/archplan/pkg/services/catalog"
	"github.com/forge-cloud/archplan/pkg/services/workflow"
)

// ImportCmd scans existing AWS infrastructure into a report, reviews the
// detected security gaps, and optionally applies the auto-fixable policies.
type ImportCmd struct {
	flags       commonFlags
	deps        Deps
	projectName string
	services    []string
	colored     bool
}

func NewImportCmd(deps Deps) *cobra.Command {
	ic := &ImportCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import existing AWS infrastructure and review its security gaps",
		RunE:  ic.run,
	}

	ic.flags.register(cmd)
	cmd.Flags().StringVar(&ic.projectName, "project", "", "Project name for the import")
	cmd.Flags().StringSliceVar(&ic.services, "services", nil,
		"AWS services to scan (default: all importable services)")
	cmd.Flags().BoolVar(&ic.colored, "color", true, "Colorize severity output")

	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := ic.flags.loadConfig()
	if err != nil {
		return err
	}

	ctrl := workflow.NewController(newGateway(cfg), pollerConfig(cfg))
	prompter := view.NewPrompter(ic.deps.In, ic.deps.Out)

	creds, err := resolveCredentials(ctx, &ic.flags, cfg, prompter)
	if err != nil {
		return err
	}
	ctrl.SetCredentials(creds)

	services := ic.services
	if len(services) == 0 {
		for _, o := range catalog.ImportableServices {
			services = append(services, o.Value)
		}
	}

	prompter.Say("Scanning %d AWS service(s)...", len(services))
	if err := ctrl.ImportExisting(ctx, ic.projectName, services); err != nil {
		prompter.Say("%s", ctrl.View().Notice)
		return err
	}

	wfv := ctrl.View()
	reporter := view.NewImportReporter(ic.deps.Out)
	reporter.Colored = ic.colored
	if err := reporter.Handle(wfv.Import); err != nil {
		return err
	}

	if show, _ := prompter.Confirm("Show the imported infrastructure code?"); show {
		if err := reporter.RenderIaC(wfv.Import); err != nil {
			return err
		}
	}

	fixable := wfv.Import.AutoFixableGapIDs()
	if len(fixable) == 0 {
		prompter.Say("No auto-fixable gaps found; remaining gaps need manual remediation.")
		return nil
	}

	apply, err := prompter.Confirm(fmt.Sprintf("Apply %d auto-fix security policies now?", len(fixable)))
	if err != nil || !apply {
		return err
	}

	if err := ctrl.ApplyAutoFixPolicies(ctx); err != nil {
		prompter.Say("%s", ctrl.View().Notice)
		return err
	}
	if ctrl.View().Phase != domain.PhaseDeploy {
		// Nothing to poll; the controller stayed in review.
		return nil
	}

	return watchDeployment(ctx, ctrl, prompter)
}
