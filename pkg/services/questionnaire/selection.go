package questionnaire

import "github.com/forge-cloud/archplan/pkg/models/domain"

// ToggleService flips the selection of one service inside its category.
// Other categories are untouched; duplicates cannot occur.
func ToggleService(a *domain.Answers, category domain.ServiceCategory, service string) {
	if a.Services == nil {
		a.Services = make(map[domain.ServiceCategory][]string)
	}

	current := a.Services[category]
	for i, s := range current {
		if s == service {
			a.Services[category] = append(current[:i:i], current[i+1:]...)
			return
		}
	}
	a.Services[category] = append(current, service)
}

// ToggleCompliance flips one compliance tag. Selecting the `none` sentinel
// clears every other tag; selecting any other tag clears `none`.
func ToggleCompliance(a *domain.Answers, tag string) {
	for i, t := range a.ComplianceRequirements {
		if t == tag {
			a.ComplianceRequirements = append(
				a.ComplianceRequirements[:i:i],
				a.ComplianceRequirements[i+1:]...,
			)
			return
		}
	}

	if tag == domain.ComplianceNone {
		a.ComplianceRequirements = []string{domain.ComplianceNone}
		return
	}

	kept := a.ComplianceRequirements[:0]
	for _, t := range a.ComplianceRequirements {
		if t != domain.ComplianceNone {
			kept = append(kept, t)
		}
	}
	a.ComplianceRequirements = append(kept, tag)
}
