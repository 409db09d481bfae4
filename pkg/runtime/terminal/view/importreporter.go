package view

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/forge-cloud/archplan/pkg/models/domain"
)

// ANSI codes for severity and compliance coloring (Colored=true only).
const (
	ansiReset   = "\033[0m"
	ansiBoldRed = "\033[1;31m"
	ansiRed     = "\033[0;31m"
	ansiYellow  = "\033[0;33m"
	ansiGray    = "\033[0;90m"
	ansiGreen   = "\033[0;32m"
)

// ColorSeverity wraps a severity label with its ANSI color when colored is
// true: critical and high in red, medium in yellow, low in gray.
func ColorSeverity(sev domain.GapSeverity, colored bool) string {
	s := string(sev)
	if !colored {
		return s
	}
	switch sev {
	case domain.SeverityCritical:
		return ansiBoldRed + s + ansiReset
	case domain.SeverityHigh:
		return ansiRed + s + ansiReset
	case domain.SeverityMedium:
		return ansiYellow + s + ansiReset
	case domain.SeverityLow:
		return ansiGray + s + ansiReset
	default:
		return s
	}
}

// ComplianceColor buckets a framework score: green at 80 and above, yellow
// from 60 to 79, red below 60.
func ComplianceColor(score int) string {
	switch {
	case score >= 80:
		return "green"
	case score >= 60:
		return "yellow"
	default:
		return "red"
	}
}

func colorScore(score int, colored bool) string {
	s := fmt.Sprintf("%d/100", score)
	if !colored {
		return s
	}
	switch ComplianceColor(score) {
	case "green":
		return ansiGreen + s + ansiReset
	case "yellow":
		return ansiYellow + s + ansiReset
	default:
		return ansiRed + s + ansiReset
	}
}

// ImportReporter renders import review views to the console.
type ImportReporter struct {
	writer io.Writer

	// Colored enables ANSI colors. Default false (CI-safe).
	Colored bool
}

// NewImportReporter creates a console import reporter.
func NewImportReporter(writer io.Writer) *ImportReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &ImportReporter{writer: writer}
}

// Handle renders all four import review views: summary with per-framework
// compliance, the resources table, the security gaps table, and the IaC
// text.
func (r *ImportReporter) Handle(report *domain.ImportReport) error {
	funcMap := template.FuncMap{
		"severity": func(sev domain.GapSeverity) string {
			return ColorSeverity(sev, r.Colored)
		},
		"score": func(score int) string {
			return colorScore(score, r.Colored)
		},
		"fixBadge": func(canAutoFix bool) string {
			if canAutoFix {
				return "Auto-fix"
			}
			return "Manual"
		},
		"complianceBadge": func(compliant bool) string {
			if compliant {
				return "compliant"
			}
			return "non-compliant"
		},
		"shorten": shorten,
	}

	tmpl := `
=== Imported Infrastructure: {{.ImportID}} ===

Resources: {{.Summary.TotalResources}}
Security Score: {{score .Summary.SecurityScore}}
Estimated Monthly Cost: USD {{printf "%.2f" .Summary.TotalEstimatedCost}}
Gaps: {{.Summary.SecurityGaps.Critical}} critical, {{.Summary.SecurityGaps.High}} high, {{.Summary.SecurityGaps.Medium}} medium, {{.Summary.SecurityGaps.Low}} low

Compliance:
{{range $framework, $status := .Summary.Compliance}}  {{$framework}}: {{score $status.Score}} ({{$status.Status}})
{{end}}
Resources:
{{range .Resources}}  {{.ResourceID}}  {{.ResourceType}}  {{.Region}}  [{{complianceBadge .Compliant}}]
{{end}}
Security Gaps:
{{range .Gaps}}  [{{severity .Severity}}] {{.GapType}} on {{.ResourceID}} ({{fixBadge .CanAutoFix}})
      {{shorten .Description 90}}
{{end}}`

	t, err := template.New("import").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(r.writer, report)
}

// RenderIaC writes the full imported infrastructure code.
func (r *ImportReporter) RenderIaC(report *domain.ImportReport) error {
	_, err := fmt.Fprintf(r.writer, "\n%s\n", report.IaCCode)
	return err
}

func shorten(msg string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(strings.TrimSpace(msg))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max-3]) + "..."
}
