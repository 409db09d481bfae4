package domain

// GapSeverity ranks a detected security gap.
type GapSeverity string

const (
	SeverityCritical GapSeverity = "critical"
	SeverityHigh     GapSeverity = "high"
	SeverityMedium   GapSeverity = "medium"
	SeverityLow      GapSeverity = "low"
)

// SecurityGap is a deficiency the generator found in imported infrastructure.
type SecurityGap struct {
	GapID       string
	ResourceID  string
	GapType     string
	Severity    GapSeverity
	Description string
	CanAutoFix  bool
}

// ImportedResource is one discovered resource in an import run.
type ImportedResource struct {
	ResourceID   string
	ResourceType string
	Region       string
	Compliant    bool
	MonthlyCost  float64
}

// GapCounts breaks the gap total down by severity.
type GapCounts struct {
	Critical int
	High     int
	Medium   int
	Low      int
}

// FrameworkStatus is the per-framework compliance assessment of an import.
type FrameworkStatus struct {
	Score     int
	Compliant bool
	Status    string
}

// ImportSummary aggregates an import run.
type ImportSummary struct {
	TotalResources     int
	SecurityScore      int
	SecurityGaps       GapCounts
	TotalEstimatedCost float64
	Compliance         map[string]FrameworkStatus
}

// ImportReport is the artifact returned by an import request. Frozen after
// creation, like Plan.
type ImportReport struct {
	ImportID  string
	Summary   ImportSummary
	Resources []ImportedResource
	Gaps      []SecurityGap
	IaCCode   string
}

// AutoFixableGapIDs returns the IDs of every gap the generator can remediate
// without human-authored changes, in report order.
func (r ImportReport) AutoFixableGapIDs() []string {
	var ids []string
	for _, g := range r.Gaps {
		if g.CanAutoFix {
			ids = append(ids, g.GapID)
		}
	}
	return ids
}
