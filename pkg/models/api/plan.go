package api

// Plan is the generator's response to a create-from-scratch request,
// for both dry runs and real deployments.
type Plan struct {
	EstimatedCost        float64  `json:"estimated_cost"`
	ResourcesPlanned     int      `json:"resources_planned"`
	SecurityFeatures     []string `json:"security_features"`
	ComplianceFrameworks []string `json:"compliance_frameworks"`
	IaCCode              string   `json:"iac_code"`
	DeploymentID         string   `json:"deployment_id,omitempty"`
	NextSteps            []string `json:"next_steps,omitempty"`
}

// CredentialCheck is the response of validate-aws-credentials.
type CredentialCheck struct {
	Valid     bool   `json:"valid"`
	AccountID string `json:"account_id,omitempty"`
	Error     string `json:"error,omitempty"`
}
