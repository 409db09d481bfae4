// Package questionnaire sequences the architecture wizard: the ordered step
// schema, per-step validation, selection operations on the accumulated
// answers, and service auto-defaulting at submit.
package questionnaire

import "github.com/forge-cloud/archplan/pkg/models/domain"

// Field identifies one answer slot a step renders.
type Field string

const (
	FieldProjectName     Field = "project_name"
	FieldDescription     Field = "description"
	FieldApplicationType Field = "application_type"
	FieldCompute         Field = "compute_preference"
	FieldTraffic         Field = "traffic_volume"
	FieldDatabase        Field = "database_type"
	FieldStorage         Field = "storage_needs"
	FieldSensitivity     Field = "data_sensitivity"
	FieldServices        Field = "services"
	FieldCompliance      Field = "compliance_requirements"
	FieldBudget          Field = "budget_range"
)

// Step is the view schema of one wizard step.
type Step struct {
	Index    int
	Title    string
	Fields   []Field
	Optional []Field
}

var steps = []Step{
	{
		Index:  0,
		Title:  "Project Basics",
		Fields: []Field{FieldProjectName, FieldDescription},
		Optional: []Field{
			FieldDescription,
		},
	},
	{
		Index:  1,
		Title:  "Application Profile",
		Fields: []Field{FieldApplicationType, FieldCompute, FieldTraffic},
	},
	{
		Index:  2,
		Title:  "Data Layer",
		Fields: []Field{FieldDatabase, FieldStorage, FieldSensitivity},
		Optional: []Field{
			FieldStorage,
		},
	},
	{
		Index:  3,
		Title:  "AWS Services",
		Fields: []Field{FieldServices},
		Optional: []Field{
			FieldServices,
		},
	},
	{
		Index:  4,
		Title:  "Compliance & Budget",
		Fields: []Field{FieldCompliance, FieldBudget},
		Optional: []Field{
			FieldCompliance,
		},
	},
}

// StepCount is the number of wizard steps.
func StepCount() int { return len(steps) }

// StepAt returns the view schema for index; ok is false out of range.
func StepAt(index int) (Step, bool) {
	if index < 0 || index >= len(steps) {
		return Step{}, false
	}
	return steps[index], true
}

// Valid is the per-step validity predicate. The workflow controller enables
// the advance action exactly when this returns true.
func Valid(index int, a domain.Answers) bool {
	switch index {
	case 0:
		return a.TrimmedProjectName() != ""
	case 1:
		return a.ApplicationType != "" && a.ComputePreference != "" && a.TrafficVolume != ""
	case 2:
		return a.DatabaseType != "" && a.DataSensitivity != ""
	case 3:
		// Empty selection is valid; defaulting happens at submit.
		return true
	case 4:
		return a.BudgetRange != "" && complianceValid(a.ComplianceRequirements)
	default:
		return false
	}
}

func complianceValid(tags []string) bool {
	if len(tags) <= 1 {
		return true
	}
	for _, t := range tags {
		if t == domain.ComplianceNone {
			return false
		}
	}
	return true
}

// Complete reports whether every step validates, i.e. the wizard may submit.
func Complete(a domain.Answers) bool {
	for i := range steps {
		if !Valid(i, a) {
			return false
		}
	}
	return true
}
