package domain

// DeploymentState is the lifecycle status reported by the generator.
type DeploymentState string

const (
	DeploymentPending  DeploymentState = "pending"
	DeploymentRunning  DeploymentState = "running"
	DeploymentComplete DeploymentState = "complete"
	DeploymentFailed   DeploymentState = "failed"
)

// Terminal reports whether no further polling is required.
func (s DeploymentState) Terminal() bool {
	return s == DeploymentComplete || s == DeploymentFailed
}

// DeploymentStatus is one point-in-time snapshot of a deployment job.
// Each poll replaces the previous snapshot wholesale.
type DeploymentStatus struct {
	Status              DeploymentState
	Progress            int
	CurrentStep         string
	Logs                []string
	Errors              []string
	EstimatedCompletion string
}
