package adapters

import (
	"github.com/forge-cloud/archplan/pkg/models/api"
	"github.com/forge-cloud/archplan/pkg/models/domain"
)

func MapAPIPlanToDomain(p *api.Plan) *domain.Plan {
	if p == nil {
		return nil
	}

	return &domain.Plan{
		EstimatedCost:        p.EstimatedCost,
		ResourcesPlanned:     p.ResourcesPlanned,
		SecurityFeatures:     p.SecurityFeatures,
		ComplianceFrameworks: p.ComplianceFrameworks,
		IaCCode:              p.IaCCode,
		DeploymentID:         p.DeploymentID,
		NextSteps:            p.NextSteps,
	}
}

func MapDomainAnswersToQuestionnaire(a domain.Answers) api.Questionnaire {
	services := make(map[string][]string, len(a.Services))
	for c, svcs := range a.Services {
		services[string(c)] = append([]string(nil), svcs...)
	}

	return api.Questionnaire{
		ApplicationType:        string(a.ApplicationType),
		ComputePreference:      a.ComputePreference,
		TrafficVolume:          a.TrafficVolume,
		DatabaseType:           a.DatabaseType,
		StorageNeeds:           a.StorageNeeds,
		DataSensitivity:        a.DataSensitivity,
		BudgetRange:            a.BudgetRange,
		ComplianceRequirements: append([]string(nil), a.ComplianceRequirements...),
		Services:               services,
		SecurityLevel:          a.SecurityLevel,
	}
}

func MapDomainPlanToAPI(p *domain.Plan) *api.Plan {
	if p == nil {
		return nil
	}

	return &api.Plan{
		EstimatedCost:        p.EstimatedCost,
		ResourcesPlanned:     p.ResourcesPlanned,
		SecurityFeatures:     p.SecurityFeatures,
		ComplianceFrameworks: p.ComplianceFrameworks,
		IaCCode:              p.IaCCode,
		DeploymentID:         p.DeploymentID,
		NextSteps:            p.NextSteps,
	}
}

func MapDomainCredentialsToAPI(c domain.Credentials) *api.AWSCredentials {
	return &api.AWSCredentials{
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		SessionToken:    c.SessionToken,
		Region:          c.Region,
	}
}

func MapAPICredentialCheckToDomain(c *api.CredentialCheck) *domain.CredentialCheck {
	if c == nil {
		return nil
	}

	return &domain.CredentialCheck{
		Valid:     c.Valid,
		AccountID: c.AccountID,
		Error:     c.Error,
	}
}
