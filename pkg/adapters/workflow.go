package adapters

import (
	"github.com/forge-cloud/archplan/pkg/models/api"
	"github.com/forge-cloud/archplan/pkg/models/domain"
)

func MapDomainWorkflowViewToAPI(v domain.WorkflowView) api.WorkflowState {
	return api.WorkflowState{
		Phase:      string(v.Phase),
		Step:       v.Step,
		Busy:       v.Busy,
		Notice:     v.Notice,
		Answers:    mapAnswers(v.Answers),
		Plan:       MapDomainPlanToAPI(v.Plan),
		Import:     MapDomainImportReportToAPI(v.Import),
		Deployment: MapDomainDeploymentStatusToAPI(v.Deployment),
	}
}

func mapAnswers(a domain.Answers) *api.WorkflowAnswers {
	services := make(map[string][]string, len(a.Services))
	for c, svcs := range a.Services {
		services[string(c)] = svcs
	}

	return &api.WorkflowAnswers{
		ProjectName:            a.ProjectName,
		Description:            a.Description,
		ApplicationType:        string(a.ApplicationType),
		ComputePreference:      a.ComputePreference,
		TrafficVolume:          a.TrafficVolume,
		DatabaseType:           a.DatabaseType,
		StorageNeeds:           a.StorageNeeds,
		DataSensitivity:        a.DataSensitivity,
		BudgetRange:            a.BudgetRange,
		ComplianceRequirements: a.ComplianceRequirements,
		Services:               services,
		SecurityLevel:          a.SecurityLevel,
	}
}

func MapAPICredentialsToDomain(r api.SetCredentialsRequest) domain.Credentials {
	return domain.Credentials{
		AccessKeyID:     r.AccessKeyID,
		SecretAccessKey: r.SecretAccessKey,
		SessionToken:    r.SessionToken,
		Region:          r.Region,
	}
}
