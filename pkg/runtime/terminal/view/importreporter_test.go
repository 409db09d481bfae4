package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-cloud/archplan/pkg/models/domain"
)

func TestComplianceColor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "green"},
		{80, "green"},
		{79, "yellow"},
		{60, "yellow"},
		{59, "red"},
		{0, "red"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ComplianceColor(tt.score), "score %d", tt.score)
	}
}

func TestColorSeverity(t *testing.T) {
	assert.Equal(t, "critical", ColorSeverity(domain.SeverityCritical, false))

	assert.Equal(t, ansiBoldRed+"critical"+ansiReset, ColorSeverity(domain.SeverityCritical, true))
	assert.Equal(t, ansiRed+"high"+ansiReset, ColorSeverity(domain.SeverityHigh, true))
	assert.Equal(t, ansiYellow+"medium"+ansiReset, ColorSeverity(domain.SeverityMedium, true))
	assert.Equal(t, ansiGray+"low"+ansiReset, ColorSeverity(domain.SeverityLow, true))
	assert.Equal(t, "unknown", ColorSeverity(domain.GapSeverity("unknown"), true))
}

func importReport() *domain.ImportReport {
	return &domain.ImportReport{
		ImportID: "imp-9",
		Summary: domain.ImportSummary{
			TotalResources:     2,
			SecurityScore:      65,
			SecurityGaps:       domain.GapCounts{Critical: 1, Medium: 1},
			TotalEstimatedCost: 310.4,
			Compliance: map[string]domain.FrameworkStatus{
				"SOC2": {Score: 65, Compliant: false, Status: "partial"},
			},
		},
		Resources: []domain.ImportedResource{
			{ResourceID: "i-0abc", ResourceType: "EC2", Region: "us-east-1", Compliant: true},
			{ResourceID: "bucket-logs", ResourceType: "S3", Region: "us-east-1", Compliant: false},
		},
		Gaps: []domain.SecurityGap{
			{
				GapID:       "g-1",
				ResourceID:  "bucket-logs",
				GapType:     "public-access",
				Severity:    domain.SeverityCritical,
				Description: "Bucket allows public read access",
				CanAutoFix:  true,
			},
			{
				GapID:       "g-2",
				ResourceID:  "i-0abc",
				GapType:     "unencrypted-volume",
				Severity:    domain.SeverityMedium,
				Description: strings.Repeat("long description ", 20),
				CanAutoFix:  false,
			},
		},
		IaCCode: "imported resource {}",
	}
}

func TestImportReporter_Handle(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, NewImportReporter(&buf).Handle(importReport()))
	out := buf.String()

	assert.Contains(t, out, "=== Imported Infrastructure: imp-9 ===")
	assert.Contains(t, out, "Security Score: 65/100")
	assert.Contains(t, out, "Gaps: 1 critical, 0 high, 1 medium, 0 low")
	assert.Contains(t, out, "SOC2: 65/100 (partial)")
	assert.Contains(t, out, "i-0abc  EC2  us-east-1  [compliant]")
	assert.Contains(t, out, "bucket-logs  S3  us-east-1  [non-compliant]")
	assert.Contains(t, out, "[critical] public-access on bucket-logs (Auto-fix)")
	assert.Contains(t, out, "[medium] unencrypted-volume on i-0abc (Manual)")
	assert.Contains(t, out, "...")
	// Colors stay off unless asked for.
	assert.NotContains(t, out, ansiReset)
}

func TestImportReporter_Colored(t *testing.T) {
	var buf strings.Builder
	reporter := NewImportReporter(&buf)
	reporter.Colored = true
	require.NoError(t, reporter.Handle(importReport()))

	assert.Contains(t, buf.String(), ansiBoldRed+"critical"+ansiReset)
	assert.Contains(t, buf.String(), ansiYellow+"65/100"+ansiReset)
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "short", shorten("short", 90))
	assert.Equal(t, "trimmed", shorten("  trimmed  ", 90))

	long := strings.Repeat("a", 100)
	got := shorten(long, 90)
	assert.Len(t, got, 90)
	assert.True(t, strings.HasSuffix(got, "..."))
}
