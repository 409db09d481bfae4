// Package api holds the wire types of the architecture generator contract.
// Field names follow the backend's snake_case JSON convention.
package api

// AWSCredentials is the credential payload attached to deploy, import, and
// apply-policies requests. Plan (dry-run) requests never carry it.
type AWSCredentials struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty"`
	Region          string `json:"region"`
}

// Questionnaire is the answer object the generator plans from.
type Questionnaire struct {
	ApplicationType        string              `json:"application_type"`
	ComputePreference      string              `json:"compute_preference"`
	TrafficVolume          string              `json:"traffic_volume"`
	DatabaseType           string              `json:"database_type"`
	StorageNeeds           string              `json:"storage_needs,omitempty"`
	DataSensitivity        string              `json:"data_sensitivity"`
	BudgetRange            string              `json:"budget_range"`
	ComplianceRequirements []string            `json:"compliance_requirements"`
	Services               map[string][]string `json:"services"`
	SecurityLevel          string              `json:"security_level"`
}

// CreateFromScratchRequest is the body of
// POST /production-infrastructure/create-from-scratch.
type CreateFromScratchRequest struct {
	ProjectName    string          `json:"project_name"`
	Description    string          `json:"description,omitempty"`
	DeploymentTool string          `json:"deployment_tool"`
	DryRun         bool            `json:"dry_run"`
	Questionnaire  Questionnaire   `json:"questionnaire"`
	AWSCredentials *AWSCredentials `json:"aws_credentials,omitempty"`
}

// ImportExistingRequest is the body of
// POST /production-infrastructure/import-existing.
type ImportExistingRequest struct {
	ProjectName      string          `json:"project_name"`
	ServicesToImport []string        `json:"services_to_import"`
	AWSCredentials   *AWSCredentials `json:"aws_credentials"`
}

// ApplyPoliciesRequest is the body of
// POST /production-infrastructure/apply-security-policies.
type ApplyPoliciesRequest struct {
	DeploymentID   string          `json:"deployment_id"`
	SecurityGapIDs []string        `json:"security_gap_ids"`
	AWSCredentials *AWSCredentials `json:"aws_credentials"`
}

// ApplyPoliciesResponse acknowledges an apply-security-policies request.
type ApplyPoliciesResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	DeploymentID string `json:"deployment_id,omitempty"`
}

// ErrorResponse is the generator's structured error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
