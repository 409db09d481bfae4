package questionnaire

import "github.com/forge-cloud/archplan/pkg/models/domain"

// baseDefaults is the service selection applied when the user picked nothing.
var baseDefaults = map[domain.ServiceCategory][]string{
	domain.CategoryCompute:    {"EC2", "Lambda"},
	domain.CategoryStorage:    {"S3", "EBS"},
	domain.CategoryDatabase:   {"RDS"},
	domain.CategoryNetworking: {"VPC", "CloudFront"},
	domain.CategorySecurity:   {"IAM", "KMS"},
	domain.CategoryMonitoring: {"CloudWatch", "CloudTrail"},
}

// ApplyServiceDefaults fills the services map from the base table, adjusted
// for the application type, when and only when every category is empty.
// Repeated application is a no-op once any category is populated.
func ApplyServiceDefaults(a *domain.Answers) {
	if !a.ServicesEmpty() {
		return
	}

	services := make(map[domain.ServiceCategory][]string, len(baseDefaults))
	for c, svcs := range baseDefaults {
		services[c] = append([]string(nil), svcs...)
	}

	// Overrides replace the named category wholesale; additions use
	// set union so they stay idempotent.
	switch a.ApplicationType {
	case domain.AppAPIMicroservice:
		services[domain.CategoryCompute] = []string{"Lambda", "ECS"}
		services[domain.CategoryDatabase] = []string{"DynamoDB"}
		services[domain.CategoryNetworking] = union(services[domain.CategoryNetworking], "API Gateway")
	case domain.AppDataAnalytics:
		services[domain.CategoryCompute] = union(services[domain.CategoryCompute], "EMR")
		services[domain.CategoryDatabase] = []string{"Redshift", "S3"}
		services[domain.CategoryStorage] = union(services[domain.CategoryStorage], "Data Lake")
	case domain.AppMachineLearning:
		services[domain.CategoryCompute] = []string{"SageMaker", "Lambda"}
		services[domain.CategoryStorage] = union(services[domain.CategoryStorage], "S3")
	}

	a.Services = services
}

func union(set []string, items ...string) []string {
	for _, item := range items {
		found := false
		for _, s := range set {
			if s == item {
				found = true
				break
			}
		}
		if !found {
			set = append(set, item)
		}
	}
	return set
}
