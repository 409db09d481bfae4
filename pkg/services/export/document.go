// Package export serializes a reviewed plan and its questionnaire answers
// into a human-readable architecture document.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/forge-cloud/archplan/pkg/models/domain"
)

const fallbackFilename = "aws-architecture"

var documentTmpl = template.Must(template.New("plan").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`# {{.ProjectName}} AWS Architecture Plan

Generated: {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}

## Project Information

- Project: {{.ProjectName}}
{{- if .Description}}
- Description: {{.Description}}
{{- end}}
- Application Type: {{.ApplicationType}}
- Security Level: {{.SecurityLevel}}

## Architecture Overview

- Compute Preference: {{.ComputePreference}}
- Traffic Volume: {{.TrafficVolume}}
- Database: {{.DatabaseType}}
{{- if .StorageNeeds}}
- Storage Needs: {{.StorageNeeds}}
{{- end}}
- Data Sensitivity: {{.DataSensitivity}}
{{- range .ServiceLines}}
- {{.}}
{{- end}}

## Security Features
{{range .SecurityFeatures}}
- {{.}}
{{- end}}

## Compliance Frameworks
{{if .ComplianceFrameworks}}{{range .ComplianceFrameworks}}
- {{.}}
{{- end}}
{{else}}
- None required
{{end}}

## Estimated Monthly Cost

USD {{printf "%.2f" .EstimatedCost}} ({{.BudgetRange}} budget range)

## Resources

{{.ResourcesPlanned}} resources planned

## Infrastructure as Code

` + "```" + `
{{.IaCCode}}
` + "```" + `

## Next Steps
{{range $i, $step := .NextSteps}}
{{inc $i}}. {{$step}}
{{- end}}
`))

type documentData struct {
	ProjectName          string
	Description          string
	ApplicationType      string
	SecurityLevel        string
	ComputePreference    string
	TrafficVolume        string
	DatabaseType         string
	StorageNeeds         string
	DataSensitivity      string
	BudgetRange          string
	ServiceLines         []string
	SecurityFeatures     []string
	ComplianceFrameworks []string
	EstimatedCost        float64
	ResourcesPlanned     int
	IaCCode              string
	NextSteps            []string
	GeneratedAt          time.Time
}

// Writer renders plan documents.
type Writer struct {
	now func() time.Time
}

// NewWriter creates a document writer.
func NewWriter() *Writer {
	return &Writer{now: time.Now}
}

// Render writes the plan document for the answers and plan to w.
func (d *Writer) Render(w io.Writer, answers domain.Answers, plan domain.Plan) error {
	features := plan.SecurityFeatures
	if len(features) == 0 {
		features = domain.DefaultSecurityFeatures
	}
	nextSteps := plan.NextSteps
	if len(nextSteps) == 0 {
		nextSteps = domain.DefaultNextSteps
	}

	var serviceLines []string
	for _, c := range domain.ServiceCategories {
		if svcs := answers.Services[c]; len(svcs) > 0 {
			serviceLines = append(serviceLines, fmt.Sprintf("%s: %s", titleCase(string(c)), strings.Join(svcs, ", ")))
		}
	}

	data := documentData{
		ProjectName:          answers.TrimmedProjectName(),
		Description:          answers.Description,
		ApplicationType:      string(answers.ApplicationType),
		SecurityLevel:        answers.SecurityLevel,
		ComputePreference:    answers.ComputePreference,
		TrafficVolume:        answers.TrafficVolume,
		DatabaseType:         answers.DatabaseType,
		StorageNeeds:         answers.StorageNeeds,
		DataSensitivity:      answers.DataSensitivity,
		BudgetRange:          answers.BudgetRange,
		ServiceLines:         serviceLines,
		SecurityFeatures:     features,
		ComplianceFrameworks: answers.ComplianceRequirements,
		EstimatedCost:        plan.EstimatedCost,
		ResourcesPlanned:     plan.ResourcesPlanned,
		IaCCode:              plan.IaCCode,
		NextSteps:            nextSteps,
		GeneratedAt:          d.now(),
	}

	if err := documentTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render plan document: %w", err)
	}
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9-]+`)

// Filename derives the download name from the project name: lowercased,
// unsafe characters collapsed to dashes, with a -plan suffix. An empty or
// fully-sanitized-away name falls back to aws-architecture.
func Filename(projectName string) string {
	name := strings.ToLower(strings.TrimSpace(projectName))
	name = unsafeFilenameChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = fallbackFilename
	}
	return name + "-plan.md"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
