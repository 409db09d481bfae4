package api

// WorkflowState is the local dashboard representation of a workflow
// snapshot. Credentials never appear here.
type WorkflowState struct {
	Phase      string            `json:"phase"`
	Step       int               `json:"step"`
	Busy       bool              `json:"busy"`
	Notice     string            `json:"notice,omitempty"`
	Answers    *WorkflowAnswers  `json:"answers,omitempty"`
	Plan       *Plan             `json:"plan,omitempty"`
	Import     *ImportReport     `json:"import,omitempty"`
	Deployment *DeploymentStatus `json:"deployment,omitempty"`
}

// WorkflowAnswers mirrors the questionnaire answers for the dashboard.
type WorkflowAnswers struct {
	ProjectName            string              `json:"project_name"`
	Description            string              `json:"description,omitempty"`
	ApplicationType        string              `json:"application_type,omitempty"`
	ComputePreference      string              `json:"compute_preference,omitempty"`
	TrafficVolume          string              `json:"traffic_volume,omitempty"`
	DatabaseType           string              `json:"database_type,omitempty"`
	StorageNeeds           string              `json:"storage_needs,omitempty"`
	DataSensitivity        string              `json:"data_sensitivity,omitempty"`
	BudgetRange            string              `json:"budget_range,omitempty"`
	ComplianceRequirements []string            `json:"compliance_requirements"`
	Services               map[string][]string `json:"services"`
	SecurityLevel          string              `json:"security_level"`
}

// UpdateAnswersRequest carries the wizard fields of the current step.
// Omitted (nil) fields are left untouched.
type UpdateAnswersRequest struct {
	ProjectName       *string `json:"project_name,omitempty"`
	Description       *string `json:"description,omitempty"`
	ApplicationType   *string `json:"application_type,omitempty"`
	ComputePreference *string `json:"compute_preference,omitempty"`
	TrafficVolume     *string `json:"traffic_volume,omitempty"`
	DatabaseType      *string `json:"database_type,omitempty"`
	StorageNeeds      *string `json:"storage_needs,omitempty"`
	DataSensitivity   *string `json:"data_sensitivity,omitempty"`
	BudgetRange       *string `json:"budget_range,omitempty"`
}

// ToggleServiceRequest flips one service selection.
type ToggleServiceRequest struct {
	Category string `json:"category"`
	Service  string `json:"service"`
}

// ToggleComplianceRequest flips one compliance tag.
type ToggleComplianceRequest struct {
	Tag string `json:"tag"`
}

// SetCredentialsRequest stores AWS credentials in the workflow's memory.
type SetCredentialsRequest struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty"`
	Region          string `json:"region"`
}

// StartImportRequest starts the import branch.
type StartImportRequest struct {
	ProjectName      string   `json:"project_name"`
	ServicesToImport []string `json:"services_to_import"`
}
