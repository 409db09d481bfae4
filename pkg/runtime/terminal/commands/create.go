package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forge-cloud/archplan/pkg/models/domain"
	"github.com/forge-cloud/archplan/pkg/runtime/terminal/view"
	"github.com/forge-cloud/archplan/pkg/services/catalog"
	"github.com/forge-cloud/archplan/pkg/services/config"
	"github.com/forge-cloud/archplan/pkg/services/export"
	"github.com/forge-cloud/archplan/pkg/services/questionnaire"
	"github.com/forge-cloud/archplan/pkg/services/workflow"
)

// CreateCmd walks the questionnaire, reviews the generated plan, and
// optionally deploys it with live status output.
type CreateCmd struct {
	flags    commonFlags
	deps     Deps
	noDeploy bool
}

func NewCreateCmd(deps Deps) *cobra.Command {
	cc := &CreateCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Plan a new architecture through the interactive wizard",
		RunE:  cc.run,
	}

	cc.flags.register(cmd)
	cmd.Flags().BoolVar(&cc.noDeploy, "no-deploy", false, "Stop after the plan review")

	return cmd
}

func (cc *CreateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := cc.flags.loadConfig()
	if err != nil {
		return err
	}

	ctrl := workflow.NewController(newGateway(cfg), pollerConfig(cfg))
	prompter := view.NewPrompter(cc.deps.In, cc.deps.Out)

	if err := ctrl.StartNew(); err != nil {
		return err
	}
	if err := cc.runWizard(ctx, ctrl, prompter); err != nil {
		return err
	}

	planView := ctrl.View()
	reporter := view.NewPlanReporter(cc.deps.Out)
	if err := reporter.Handle(planView.Answers, planView.Plan); err != nil {
		return err
	}

	if expand, _ := prompter.Confirm("Show the full infrastructure code?"); expand {
		prompter.Say("%s", planView.Plan.IaCCode)
	}

	if save, _ := prompter.Confirm("Save the plan document?"); save {
		if err := cc.saveDocument(planView, prompter); err != nil {
			return err
		}
	}

	if cc.noDeploy {
		return nil
	}
	deploy, err := prompter.Confirm("Deploy this architecture now?")
	if err != nil || !deploy {
		return err
	}

	return cc.deploy(ctx, ctrl, cfg, prompter)
}

// runWizard drives the five questionnaire steps, re-prompting while the
// current step's predicate fails.
func (cc *CreateCmd) runWizard(ctx context.Context, ctrl *workflow.Controller, prompter *view.Prompter) error {
	for {
		wfv := ctrl.View()
		if wfv.Phase != domain.PhaseCreate {
			return fmt.Errorf("wizard left the create phase unexpectedly")
		}

		step, _ := questionnaire.StepAt(wfv.Step)
		prompter.Say("\n--- Step %d of %d: %s ---", step.Index+1, questionnaire.StepCount(), step.Title)

		if err := cc.askStep(ctrl, prompter, step.Index); err != nil {
			return err
		}

		if wfv.Step == domain.WizardSteps-1 {
			if !ctrl.CanAdvance() {
				prompter.Say("Some answers are missing; let's go over this step again.")
				continue
			}
			prompter.Say("Generating architecture plan...")
			if err := ctrl.Submit(ctx); err != nil {
				prompter.Say("%s", ctrl.View().Notice)
				return err
			}
			return nil
		}

		if err := ctrl.Advance(); err != nil {
			prompter.Say("Some answers are missing; let's go over this step again.")
			continue
		}
	}
}

func (cc *CreateCmd) askStep(ctrl *workflow.Controller, prompter *view.Prompter, step int) error {
	switch step {
	case 0:
		name, err := prompter.Ask("Project name")
		if err != nil {
			return err
		}
		description, err := prompter.Ask("Description (optional)")
		if err != nil {
			return err
		}
		return ctrl.SetProjectBasics(name, description)

	case 1:
		appType, err := prompter.Choose("Application type", catalog.ApplicationTypes)
		if err != nil {
			return err
		}
		compute, err := prompter.Choose("Compute preference", catalog.ComputePreferences)
		if err != nil {
			return err
		}
		traffic, err := prompter.Choose("Expected traffic volume", catalog.TrafficVolumes)
		if err != nil {
			return err
		}
		return ctrl.SetApplicationProfile(domain.ApplicationType(appType), compute, traffic)

	case 2:
		database, err := prompter.Choose("Database type", catalog.DatabaseTypes)
		if err != nil {
			return err
		}
		storage, err := prompter.Choose("Storage needs (optional)", catalog.StorageNeeds)
		if err != nil {
			return err
		}
		sensitivity, err := prompter.Choose("Data sensitivity", catalog.DataSensitivities)
		if err != nil {
			return err
		}
		return ctrl.SetDataLayer(database, storage, sensitivity)

	case 3:
		prompter.Say("Pick AWS services, or leave everything empty for recommended defaults.")
		for _, category := range domain.ServiceCategories {
			selected, err := prompter.ChooseMany(string(category), catalog.CategoryOptions(category))
			if err != nil {
				return err
			}
			for _, svc := range selected {
				if err := ctrl.ToggleService(category, svc); err != nil {
					return err
				}
			}
		}
		return nil

	case 4:
		tags, err := prompter.ChooseMany("Compliance requirements", catalog.ComplianceFrameworks)
		if err != nil {
			return err
		}
		for _, tag := range tags {
			if err := ctrl.ToggleCompliance(tag); err != nil {
				return err
			}
		}
		budget, err := prompter.Choose("Monthly budget range", catalog.BudgetRanges)
		if err != nil {
			return err
		}
		return ctrl.SetBudgetRange(budget)
	}
	return nil
}

func (cc *CreateCmd) saveDocument(wfv domain.WorkflowView, prompter *view.Prompter) error {
	filename := export.Filename(wfv.Answers.ProjectName)
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	if err := export.NewWriter().Render(f, wfv.Answers, *wfv.Plan); err != nil {
		return err
	}
	prompter.Say("Saved %s", filename)
	return nil
}

func (cc *CreateCmd) deploy(
	ctx context.Context,
	ctrl *workflow.Controller,
	cfg *config.Config,
	prompter *view.Prompter,
) error {
	creds, err := resolveCredentials(ctx, &cc.flags, cfg, prompter)
	if err != nil {
		return err
	}
	ctrl.SetCredentials(creds)

	// Advisory only; a failed check never blocks the deploy.
	if check, err := ctrl.ValidateCredentials(ctx); err != nil {
		prompter.Say("Could not validate credentials (%v); continuing anyway.", err)
	} else if !check.Valid {
		prompter.Say("Credential check failed: %s. Continuing anyway.", check.Error)
	} else {
		prompter.Say("Credentials valid for account %s.", check.AccountID)
	}

	prompter.Say("Starting deployment...")
	if err := ctrl.ConfirmDeploy(ctx); err != nil {
		prompter.Say("%s", ctrl.View().Notice)
		return err
	}

	return watchDeployment(ctx, ctrl, prompter)
}

// watchDeployment consumes workflow events until the deployment reaches a
// terminal outcome.
func watchDeployment(ctx context.Context, ctrl *workflow.Controller, prompter *view.Prompter) error {
	lastStep := ""
	for {
		select {
		case <-ctx.Done():
			ctrl.Restart()
			return ctx.Err()
		case event := <-ctrl.Events():
			if event.Err != nil {
				prompter.Say("%s", ctrl.View().Notice)
				return fmt.Errorf("deployment polling aborted: %w", event.Err)
			}
			if event.Deployment != nil {
				dep := event.Deployment
				if dep.CurrentStep != "" && dep.CurrentStep != lastStep {
					lastStep = dep.CurrentStep
					prompter.Say("[%3d%%] %s", dep.Progress, dep.CurrentStep)
				}
				if dep.Status == domain.DeploymentFailed {
					prompter.Say("%s", ctrl.View().Notice)
					return fmt.Errorf("deployment failed")
				}
			}
			if event.Phase == domain.PhaseComplete {
				prompter.Say("Deployment complete.")
				return nil
			}
		}
	}
}
