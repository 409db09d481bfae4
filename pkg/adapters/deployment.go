package adapters

import (
	"math"

	"github.com/forge-cloud/archplan/pkg/models/api"
	"github.com/forge-cloud/archplan/pkg/models/domain"
)

func MapAPIDeploymentStatusToDomain(s *api.DeploymentStatus) *domain.DeploymentStatus {
	if s == nil {
		return nil
	}

	return &domain.DeploymentStatus{
		Status:              domain.DeploymentState(s.Status),
		Progress:            int(math.Round(s.ProgressPercentage)),
		CurrentStep:         s.CurrentStep,
		Logs:                s.Logs,
		Errors:              s.Errors,
		EstimatedCompletion: s.EstimatedCompletion,
	}
}

func MapDomainDeploymentStatusToAPI(s *domain.DeploymentStatus) *api.DeploymentStatus {
	if s == nil {
		return nil
	}

	return &api.DeploymentStatus{
		Status:              string(s.Status),
		ProgressPercentage:  float64(s.Progress),
		CurrentStep:         s.CurrentStep,
		Logs:                s.Logs,
		Errors:              s.Errors,
		EstimatedCompletion: s.EstimatedCompletion,
	}
}
