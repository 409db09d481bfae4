package view

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/forge-cloud/archplan/pkg/models/domain"
)

// IaCPreviewLimit is how much generated code the review shows before the
// user asks for the full text.
const IaCPreviewLimit = 500

// PlanReporter renders the plan review to the console.
type PlanReporter struct {
	writer io.Writer
}

// NewPlanReporter creates a console plan reporter.
func NewPlanReporter(writer io.Writer) *PlanReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &PlanReporter{writer: writer}
}

type planView struct {
	ProjectName      string
	EstimatedCost    float64
	ResourcesPlanned int
	SecurityFeatures []string
	Frameworks       []string
	IaCPreview       string
	Truncated        bool
}

// Handle renders the plan review: cost, resource count, security features
// (canonical defaults when the generator supplies none), and a truncated
// IaC preview.
func (r *PlanReporter) Handle(answers domain.Answers, plan *domain.Plan) error {
	tmpl := `
=== Architecture Plan: {{.ProjectName}} ===

Estimated Monthly Cost: USD {{printf "%.2f" .EstimatedCost}}
Resources Planned: {{.ResourcesPlanned}}

Security Features:
{{range .SecurityFeatures}}  - {{.}}
{{end}}{{if .Frameworks}}Compliance Frameworks:
{{range .Frameworks}}  - {{.}}
{{end}}{{end}}
Infrastructure as Code{{if .Truncated}} (preview, full text on confirm){{end}}:
----------------------------------------
{{.IaCPreview}}
----------------------------------------
`
	t, err := template.New("plan").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	features := plan.SecurityFeatures
	if len(features) == 0 {
		features = domain.DefaultSecurityFeatures
	}

	preview, truncated := PreviewIaC(plan.IaCCode)

	return t.Execute(r.writer, planView{
		ProjectName:      answers.TrimmedProjectName(),
		EstimatedCost:    plan.EstimatedCost,
		ResourcesPlanned: plan.ResourcesPlanned,
		SecurityFeatures: features,
		Frameworks:       plan.ComplianceFrameworks,
		IaCPreview:       preview,
		Truncated:        truncated,
	})
}

// PreviewIaC truncates code to the preview limit; the second return reports
// whether anything was cut.
func PreviewIaC(code string) (string, bool) {
	runes := []rune(code)
	if len(runes) <= IaCPreviewLimit {
		return code, false
	}
	return string(runes[:IaCPreviewLimit]) + "...", true
}
