package api

// DeploymentStatus is the response of deployment-status/{id}.
type DeploymentStatus struct {
	Status              string   `json:"status"`
	ProgressPercentage  float64  `json:"progress_percentage"`
	CurrentStep         string   `json:"current_step"`
	Logs                []string `json:"logs"`
	Errors              []string `json:"errors"`
	EstimatedCompletion string   `json:"estimated_completion,omitempty"`
}
