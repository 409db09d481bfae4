package adapters

import (
	"github.com/forge-cloud/archplan/pkg/models/api"
	"github.com/forge-cloud/archplan/pkg/models/domain"
)

func MapAPIImportReportToDomain(r *api.ImportReport) *domain.ImportReport {
	if r == nil {
		return nil
	}

	resources := make([]domain.ImportedResource, 0, len(r.ImportedResources))
	for _, res := range r.ImportedResources {
		resources = append(resources, domain.ImportedResource{
			ResourceID:   res.ResourceID,
			ResourceType: res.ResourceType,
			Region:       res.Region,
			Compliant:    res.Compliant,
			MonthlyCost:  res.MonthlyCost,
		})
	}

	gaps := make([]domain.SecurityGap, 0, len(r.SecurityGaps))
	for _, g := range r.SecurityGaps {
		gaps = append(gaps, domain.SecurityGap{
			GapID:       g.GapID,
			ResourceID:  g.ResourceID,
			GapType:     g.GapType,
			Severity:    domain.GapSeverity(g.Severity),
			Description: g.Description,
			CanAutoFix:  g.CanAutoFix,
		})
	}

	compliance := make(map[string]domain.FrameworkStatus, len(r.Summary.ComplianceStatus))
	for framework, status := range r.Summary.ComplianceStatus {
		compliance[framework] = domain.FrameworkStatus{
			Score:     status.Score,
			Compliant: status.Compliant,
			Status:    status.Status,
		}
	}

	return &domain.ImportReport{
		ImportID: r.ImportID,
		Summary: domain.ImportSummary{
			TotalResources:     r.Summary.TotalResources,
			SecurityScore:      r.Summary.SecurityScore,
			SecurityGaps:       domain.GapCounts(r.Summary.SecurityGaps),
			TotalEstimatedCost: r.Summary.TotalEstimatedCost,
			Compliance:         compliance,
		},
		Resources: resources,
		Gaps:      gaps,
		IaCCode:   r.IaCCode,
	}
}

func MapDomainImportReportToAPI(r *domain.ImportReport) *api.ImportReport {
	if r == nil {
		return nil
	}

	resources := make([]api.ImportedResource, 0, len(r.Resources))
	for _, res := range r.Resources {
		resources = append(resources, api.ImportedResource{
			ResourceID:   res.ResourceID,
			ResourceType: res.ResourceType,
			Region:       res.Region,
			Compliant:    res.Compliant,
			MonthlyCost:  res.MonthlyCost,
		})
	}

	gaps := make([]api.SecurityGap, 0, len(r.Gaps))
	for _, g := range r.Gaps {
		gaps = append(gaps, api.SecurityGap{
			GapID:       g.GapID,
			ResourceID:  g.ResourceID,
			GapType:     g.GapType,
			Severity:    string(g.Severity),
			Description: g.Description,
			CanAutoFix:  g.CanAutoFix,
		})
	}

	compliance := make(map[string]api.FrameworkStatus, len(r.Summary.Compliance))
	for framework, status := range r.Summary.Compliance {
		compliance[framework] = api.FrameworkStatus{
			Score:     status.Score,
			Compliant: status.Compliant,
			Status:    status.Status,
		}
	}

	return &api.ImportReport{
		ImportID: r.ImportID,
		Summary: api.ImportSummary{
			TotalResources:     r.Summary.TotalResources,
			SecurityScore:      r.Summary.SecurityScore,
			SecurityGaps:       api.GapCounts(r.Summary.SecurityGaps),
			TotalEstimatedCost: r.Summary.TotalEstimatedCost,
			ComplianceStatus:   compliance,
		},
		ImportedResources: resources,
		SecurityGaps:      gaps,
		IaCCode:           r.IaCCode,
	}
}
