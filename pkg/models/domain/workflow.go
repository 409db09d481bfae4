package domain

// Phase is the workflow state machine position.
type Phase string

const (
	PhaseChoose       Phase = "choose"
	PhaseCreate       Phase = "create"
	PhaseImporting    Phase = "importing"
	PhaseReview       Phase = "review"
	PhaseImportReview Phase = "import-review"
	PhaseDeploy       Phase = "deploy"
	PhaseComplete     Phase = "complete"
)

// WizardSteps is the number of questionnaire steps in the create phase.
const WizardSteps = 5

// WorkflowView is an immutable snapshot of the workflow published to
// renderers. Credentials are deliberately absent.
type WorkflowView struct {
	Phase      Phase
	Step       int
	Answers    Answers
	Plan       *Plan
	Import     *ImportReport
	Deployment *DeploymentStatus
	Busy       bool
	Notice     string
}
