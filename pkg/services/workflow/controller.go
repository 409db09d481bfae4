// Package workflow owns the production-architecture workflow: the phase
// state machine across choose, create, review, deploy, import, and
// complete, plus the deployment status poller.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/forge-cloud/archplan/pkg/models/domain"
	"github.com/forge-cloud/archplan/pkg/services/gateway"
	"github.com/forge-cloud/archplan/pkg/services/questionnaire"
)

// Gateway is the generator surface the controller drives.
type Gateway interface {
	StatusFetcher

	GeneratePlan(ctx context.Context, answers domain.Answers) (*domain.Plan, error)
	Deploy(ctx context.Context, answers domain.Answers, creds domain.Credentials) (*domain.Plan, error)
	ImportInfrastructure(
		ctx context.Context,
		projectName string,
		servicesToImport []string,
		creds domain.Credentials,
	) (*domain.ImportReport, error)
	ApplySecurityPolicies(
		ctx context.Context,
		importID string,
		gapIDs []string,
		creds domain.Credentials,
	) (*gateway.ApplyAck, error)
	ValidateCredentials(ctx context.Context, creds domain.Credentials) (*domain.CredentialCheck, error)
}

// Event is one observable workflow change: a phase transition or a fresh
// deployment status snapshot. Err is non-nil when polling gave up without
// observing a terminal status; no further events follow it.
type Event struct {
	Phase      domain.Phase
	Deployment *domain.DeploymentStatus
	Err        error
}

var (
	// ErrBusy rejects an action while a generator call is in flight.
	ErrBusy = errors.New("another request is in flight")

	// ErrInvalidStep rejects an advance from a step whose predicate fails.
	ErrInvalidStep = errors.New("current step answers are incomplete")

	// ErrWrongPhase rejects an action issued outside its phase.
	ErrWrongPhase = errors.New("action not available in current phase")
)

// Controller runs one workflow instance. Answers live for the wizard
// session; credentials stay in memory and die with the instance.
type Controller struct {
	gw         Gateway
	pollerCfg  PollerConfig
	events     chan Event
	deployFrom domain.Phase

	mu         sync.Mutex
	phase      domain.Phase
	step       int
	answers    domain.Answers
	plan       *domain.Plan
	importRep  *domain.ImportReport
	deployment *domain.DeploymentStatus
	creds      domain.Credentials
	busy       bool
	notice     string
	poller     *Poller
}

// NewController creates a workflow in the choose phase.
func NewController(gw Gateway, pollerCfg PollerConfig) *Controller {
	return &Controller{
		gw:        gw,
		pollerCfg: pollerCfg,
		events:    make(chan Event, 64),
		phase:     domain.PhaseChoose,
		answers:   domain.NewAnswers(),
	}
}

// Events streams phase transitions and poll snapshots. Delivery is
// best-effort; a full buffer drops the event rather than block. The
// authoritative state is always View.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// View returns an immutable snapshot for renderers.
func (c *Controller) View() domain.WorkflowView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := domain.WorkflowView{
		Phase:   c.phase,
		Step:    c.step,
		Answers: c.answers.Clone(),
		Busy:    c.busy,
		Notice:  c.notice,
	}
	if c.plan != nil {
		plan := *c.plan
		view.Plan = &plan
	}
	if c.importRep != nil {
		rep := *c.importRep
		view.Import = &rep
	}
	if c.deployment != nil {
		dep := *c.deployment
		view.Deployment = &dep
	}
	return view
}

// StartNew moves choose -> create(0).
func (c *Controller) StartNew() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != domain.PhaseChoose {
		return ErrWrongPhase
	}
	c.phase = domain.PhaseCreate
	c.step = 0
	c.answers = domain.NewAnswers()
	c.notice = ""
	c.emitLocked()
	return nil
}

// Restart aborts any phase back to choose, stopping a live poller and
// discarding answers, artifacts, and credentials.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.poller != nil {
		c.poller.Stop()
		c.poller = nil
	}
	c.phase = domain.PhaseChoose
	c.step = 0
	c.answers = domain.NewAnswers()
	c.plan = nil
	c.importRep = nil
	c.deployment = nil
	c.creds = domain.Credentials{}
	c.busy = false
	c.notice = ""
	c.emitLocked()
}

// Mutators below are only honored in the create phase; review and later
// phases see a frozen copy of the answers.

func (c *Controller) SetProjectBasics(name, description string) error {
	return c.mutate(func(a *domain.Answers) {
		a.ProjectName = name
		a.Description = description
	})
}

func (c *Controller) SetApplicationProfile(appType domain.ApplicationType, compute, traffic string) error {
	return c.mutate(func(a *domain.Answers) {
		a.ApplicationType = appType
		a.ComputePreference = compute
		a.TrafficVolume = traffic
	})
}

func (c *Controller) SetDataLayer(database, storage, sensitivity string) error {
	return c.mutate(func(a *domain.Answers) {
		a.DatabaseType = database
		a.StorageNeeds = storage
		a.DataSensitivity = sensitivity
	})
}

func (c *Controller) SetBudgetRange(budget string) error {
	return c.mutate(func(a *domain.Answers) {
		a.BudgetRange = budget
	})
}

func (c *Controller) ToggleService(category domain.ServiceCategory, service string) error {
	return c.mutate(func(a *domain.Answers) {
		questionnaire.ToggleService(a, category, service)
	})
}

func (c *Controller) ToggleCompliance(tag string) error {
	return c.mutate(func(a *domain.Answers) {
		questionnaire.ToggleCompliance(a, tag)
	})
}

func (c *Controller) mutate(fn func(*domain.Answers)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != domain.PhaseCreate {
		return ErrWrongPhase
	}
	fn(&c.answers)
	return nil
}

// CanAdvance reports whether the current step's predicate holds. The view
// disables the advance action exactly when this is false.
func (c *Controller) CanAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == domain.PhaseCreate && questionnaire.Valid(c.step, c.answers)
}

// Advance moves create(k) -> create(k+1) for k < 4. The final step submits
// through Submit instead.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != domain.PhaseCreate {
		return ErrWrongPhase
	}
	if c.step >= domain.WizardSteps-1 {
		return fmt.Errorf("step %d submits, not advances", c.step)
	}
	if !questionnaire.Valid(c.step, c.answers) {
		return ErrInvalidStep
	}
	c.step++
	c.emitLocked()
	return nil
}

// Back moves create(k) -> create(k-1), or create(0) -> choose.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != domain.PhaseCreate {
		return ErrWrongPhase
	}
	if c.step == 0 {
		c.phase = domain.PhaseChoose
		c.emitLocked()
		return nil
	}
	c.step--
	c.emitLocked()
	return nil
}

// Submit finishes the wizard: defaults the service selection when empty,
// requests a dry-run plan, and on success freezes the answers in review.
// Credentials are never part of this request.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != domain.PhaseCreate || c.step != domain.WizardSteps-1 {
		c.mu.Unlock()
		return ErrWrongPhase
	}
	if !questionnaire.Complete(c.answers) {
		c.mu.Unlock()
		return ErrInvalidStep
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}

	answers := c.answers.Clone()
	questionnaire.ApplyServiceDefaults(&answers)
	c.busy = true
	c.mu.Unlock()

	plan, err := c.gw.GeneratePlan(ctx, answers)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		// The defaulted clone is discarded; the wizard answers are unchanged.
		c.notice = userMessage(err)
		return err
	}

	c.answers = answers
	c.plan = plan
	c.phase = domain.PhaseReview
	c.notice = ""
	c.emitLocked()
	return nil
}

// SetCredentials stores AWS credentials for the credentialed operations.
func (c *Controller) SetCredentials(creds domain.Credentials) {
	c.mu.Lock()
	c.creds = creds
	c.mu.Unlock()
}

// ValidateCredentials is advisory; a failed or skipped validation never
// blocks ConfirmDeploy.
func (c *Controller) ValidateCredentials(ctx context.Context) (*domain.CredentialCheck, error) {
	c.mu.Lock()
	creds := c.creds
	c.mu.Unlock()

	return c.gw.ValidateCredentials(ctx, creds)
}

// ConfirmDeploy moves review -> deploy: issues the deployment with real
// credentials and starts the status poller.
func (c *Controller) ConfirmDeploy(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != domain.PhaseReview {
		c.mu.Unlock()
		return ErrWrongPhase
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	answers := c.answers.Clone()
	creds := c.creds
	c.busy = true
	c.mu.Unlock()

	plan, err := c.gw.Deploy(ctx, answers, creds)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.notice = userMessage(err)
		return err
	}
	if plan.DeploymentID == "" {
		c.notice = "The generator accepted the deployment but returned no job id."
		return fmt.Errorf("deploy response missing deployment id")
	}

	c.plan = plan
	c.deployFrom = domain.PhaseReview
	c.startPollLocked(ctx, plan.DeploymentID)
	return nil
}

// ImportExisting runs the import branch: choose -> importReview on success.
func (c *Controller) ImportExisting(ctx context.Context, projectName string, servicesToImport []string) error {
	c.mu.Lock()
	if c.phase != domain.PhaseChoose {
		c.mu.Unlock()
		return ErrWrongPhase
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	creds := c.creds
	c.busy = true
	c.phase = domain.PhaseImporting
	c.emitLocked()
	c.mu.Unlock()

	report, err := c.gw.ImportInfrastructure(ctx, projectName, servicesToImport, creds)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.phase = domain.PhaseChoose
		c.notice = userMessage(err)
		c.emitLocked()
		return err
	}

	c.importRep = report
	c.answers.ProjectName = projectName
	c.phase = domain.PhaseImportReview
	c.notice = ""
	c.emitLocked()
	return nil
}

// ApplyAutoFixPolicies submits every auto-fixable gap of the import report
// and moves importReview -> deploy, polling the remediation job.
func (c *Controller) ApplyAutoFixPolicies(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != domain.PhaseImportReview || c.importRep == nil {
		c.mu.Unlock()
		return ErrWrongPhase
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}

	gapIDs := c.importRep.AutoFixableGapIDs()
	if len(gapIDs) == 0 {
		c.notice = "No auto-fixable security gaps to apply."
		c.mu.Unlock()
		return nil
	}

	importID := c.importRep.ImportID
	creds := c.creds
	c.busy = true
	c.mu.Unlock()

	ack, err := c.gw.ApplySecurityPolicies(ctx, importID, gapIDs, creds)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.notice = userMessage(err)
		return err
	}

	deploymentID := ack.DeploymentID
	if deploymentID == "" {
		deploymentID = importID
	}
	c.deployFrom = domain.PhaseImportReview
	c.startPollLocked(ctx, deploymentID)
	return nil
}

// RetryAfterFailure returns a failed deployment to its review phase so the
// user can adjust credentials or the plan and deploy again.
func (c *Controller) RetryAfterFailure() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != domain.PhaseDeploy {
		return ErrWrongPhase
	}
	if c.deployment == nil || c.deployment.Status != domain.DeploymentFailed {
		return fmt.Errorf("deployment has not failed")
	}

	c.deployment = nil
	if c.deployFrom == domain.PhaseImportReview {
		c.phase = domain.PhaseImportReview
	} else {
		c.phase = domain.PhaseReview
	}
	c.emitLocked()
	return nil
}

// startPollLocked transitions into deploy and launches the poller goroutine.
// Caller holds the mutex.
func (c *Controller) startPollLocked(ctx context.Context, deploymentID string) {
	c.phase = domain.PhaseDeploy
	c.deployment = &domain.DeploymentStatus{Status: domain.DeploymentPending}
	c.notice = ""
	c.emitLocked()

	poller := NewPoller(c.gw, deploymentID, c.pollerCfg)
	c.poller = poller

	go poller.Run(ctx)
	go c.consumePoller(ctx, poller)
}

func (c *Controller) consumePoller(ctx context.Context, poller *Poller) {
	logger := zerolog.Ctx(ctx)

	for status := range poller.Updates() {
		c.mu.Lock()
		if c.poller != poller {
			// The workflow restarted; this poller's snapshots are stale.
			c.mu.Unlock()
			return
		}
		c.applyStatusLocked(status)
		c.mu.Unlock()
	}

	<-poller.Done()
	terminal, err := poller.Terminal()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.poller != poller {
		return
	}

	switch {
	case terminal != nil:
		// The terminal snapshot was dropped from the updates buffer;
		// the poller keeps it, so the phase still lands.
		c.applyStatusLocked(*terminal)
	case err != nil:
		logger.Warn().Err(err).Msg("deployment polling aborted")
		c.notice = "Lost contact with the deployment job. Check status later or retry."
		c.poller = nil
		c.emitEventLocked(err)
	}
}

// applyStatusLocked records one poll snapshot and handles the terminal
// transitions. Caller holds the mutex and has checked poller ownership.
func (c *Controller) applyStatusLocked(status domain.DeploymentStatus) {
	snapshot := status
	c.deployment = &snapshot

	switch status.Status {
	case domain.DeploymentComplete:
		c.phase = domain.PhaseComplete
		c.poller = nil
	case domain.DeploymentFailed:
		// Stays in deploy; the user chooses retry or restart.
		c.notice = failureNotice(status.Errors)
		c.poller = nil
	}
	c.emitLocked()
}

func (c *Controller) emitLocked() {
	c.emitEventLocked(nil)
}

func (c *Controller) emitEventLocked(err error) {
	event := Event{Phase: c.phase, Err: err}
	if c.deployment != nil {
		snapshot := *c.deployment
		event.Deployment = &snapshot
	}

	select {
	case c.events <- event:
	default:
		// Drop rather than block a renderer that stopped reading.
	}
}

func failureNotice(errs []string) string {
	if len(errs) == 0 {
		return "Deployment failed."
	}
	return "Deployment failed: " + strings.Join(errs, "; ")
}

// userMessage turns a gateway error into the banner text renderers show.
func userMessage(err error) string {
	var backendErr *gateway.BackendError
	var credErr *gateway.CredentialError

	switch {
	case errors.As(err, &credErr):
		return "AWS credentials were rejected. Re-enter them and try again."
	case errors.As(err, &backendErr):
		return backendErr.Detail
	case errors.Is(err, gateway.ErrNetwork):
		return "Could not reach the architecture generator. Check the backend URL and try again."
	default:
		return err.Error()
	}
}
