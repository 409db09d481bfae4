package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/forge-cloud/archplan/pkg/models/domain"
)

// StatusFetcher is the slice of the gateway the poller needs.
type StatusFetcher interface {
	GetDeploymentStatus(ctx context.Context, deploymentID string) (*domain.DeploymentStatus, error)
}

// PollerConfig tunes the polling cadence.
type PollerConfig struct {
	// Interval between successful polls.
	Interval time.Duration

	// FailureInterval is the longer wait after a transport failure.
	FailureInterval time.Duration

	// MaxConsecutiveFailures aborts the poll after that many transport
	// failures in a row. Zero means no ceiling.
	MaxConsecutiveFailures int
}

// DefaultPollerConfig matches the generator's expected cadence: 5 s between
// successful polls, 10 s back-off after a transport failure.
func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		Interval:               5 * time.Second,
		FailureInterval:        10 * time.Second,
		MaxConsecutiveFailures: 30,
	}
}

// Poller follows one deployment job until a terminal status. It keeps at
// most one status request in flight and checks a stop flag before every
// reschedule, so cancellation is cooperative.
type Poller struct {
	fetcher      StatusFetcher
	deploymentID string
	config       PollerConfig

	updates chan domain.DeploymentStatus
	done    chan struct{}

	mu       sync.Mutex
	stopped  bool
	terminal *domain.DeploymentStatus
	err      error
}

// NewPoller creates a poller for the deployment. Run starts it.
func NewPoller(fetcher StatusFetcher, deploymentID string, config PollerConfig) *Poller {
	if config.Interval <= 0 {
		config.Interval = DefaultPollerConfig().Interval
	}
	if config.FailureInterval <= 0 {
		config.FailureInterval = DefaultPollerConfig().FailureInterval
	}

	return &Poller{
		fetcher:      fetcher,
		deploymentID: deploymentID,
		config:       config,
		updates:      make(chan domain.DeploymentStatus, 16),
		done:         make(chan struct{}),
	}
}

// Updates streams every successful status snapshot, terminal one included.
func (p *Poller) Updates() <-chan domain.DeploymentStatus {
	return p.updates
}

// Done closes when the poll loop has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Stop asks the loop to exit before its next fetch. It does not interrupt a
// request already in flight.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
}

// Terminal returns the final status once Done is closed. err is non-nil when
// the loop gave up without observing a terminal status.
func (p *Poller) Terminal() (*domain.DeploymentStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.terminal, p.err
}

// Run polls until a terminal status, the failure ceiling, a Stop call, or
// context cancellation. It owns the updates channel and closes it on exit.
func (p *Poller) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("deployment_id", p.deploymentID).Logger()

	defer close(p.done)
	defer close(p.updates)

	failures := 0
	for {
		if p.isStopped() {
			logger.Info().Msg("deployment poll stopped")
			return
		}

		status, err := p.fetcher.GetDeploymentStatus(ctx, p.deploymentID)
		if err != nil {
			failures++
			logger.Warn().Err(err).Int("consecutive_failures", failures).Msg("status poll failed")

			if p.config.MaxConsecutiveFailures > 0 && failures >= p.config.MaxConsecutiveFailures {
				p.finish(nil, fmt.Errorf("gave up after %d consecutive poll failures: %w", failures, err))
				return
			}
			if !p.sleep(ctx, p.config.FailureInterval) {
				return
			}
			continue
		}

		failures = 0
		p.publish(*status)

		if status.Status.Terminal() {
			logger.Info().Str("status", string(status.Status)).Msg("deployment reached terminal status")
			p.finish(status, nil)
			return
		}

		if !p.sleep(ctx, p.config.Interval) {
			return
		}
	}
}

func (p *Poller) publish(status domain.DeploymentStatus) {
	select {
	case p.updates <- status:
	default:
		// A slow consumer never blocks the poll loop.
	}
}

func (p *Poller) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		p.finish(nil, ctx.Err())
		return false
	case <-timer.C:
		return true
	}
}

func (p *Poller) finish(status *domain.DeploymentStatus, err error) {
	p.mu.Lock()
	p.terminal = status
	p.err = err
	p.mu.Unlock()
}

func (p *Poller) isStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}
