package api

// SecurityGap is one deficiency found in imported infrastructure.
type SecurityGap struct {
	GapID       string `json:"gap_id"`
	ResourceID  string `json:"resource_id"`
	GapType     string `json:"gap_type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	CanAutoFix  bool   `json:"can_auto_fix"`
}

// ImportedResource is one discovered resource.
type ImportedResource struct {
	ResourceID   string  `json:"resource_id"`
	ResourceType string  `json:"resource_type"`
	Region       string  `json:"region"`
	Compliant    bool    `json:"compliant"`
	MonthlyCost  float64 `json:"monthly_cost"`
}

// GapCounts is the severity breakdown of an import summary.
type GapCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// FrameworkStatus is a per-framework compliance assessment.
type FrameworkStatus struct {
	Score     int    `json:"score"`
	Compliant bool   `json:"compliant"`
	Status    string `json:"status"`
}

// ImportSummary aggregates an import run.
type ImportSummary struct {
	TotalResources     int                        `json:"total_resources"`
	SecurityScore      int                        `json:"security_score"`
	SecurityGaps       GapCounts                  `json:"security_gaps"`
	TotalEstimatedCost float64                    `json:"total_estimated_cost"`
	ComplianceStatus   map[string]FrameworkStatus `json:"compliance_status"`
}

// ImportReport is the generator's response to an import-existing request.
type ImportReport struct {
	ImportID          string             `json:"import_id"`
	Summary           ImportSummary      `json:"summary"`
	ImportedResources []ImportedResource `json:"imported_resources"`
	SecurityGaps      []SecurityGap      `json:"security_gaps"`
	IaCCode           string             `json:"iac_code"`
}
