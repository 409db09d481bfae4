package domain

import "strings"

// ApplicationType classifies the workload the questionnaire describes.
type ApplicationType string

const (
	AppWebApplication  ApplicationType = "web-application"
	AppAPIMicroservice ApplicationType = "api-microservices"
	AppDataAnalytics   ApplicationType = "data-analytics"
	AppMachineLearning ApplicationType = "machine-learning"
	AppMobileBackend   ApplicationType = "mobile-backend"
	AppEnterprise      ApplicationType = "enterprise-app"
	AppIoTPlatform     ApplicationType = "iot-platform"
	AppEcommerce       ApplicationType = "ecommerce"
)

// ServiceCategory groups AWS services in the selection catalog.
type ServiceCategory string

const (
	CategoryCompute    ServiceCategory = "compute"
	CategoryStorage    ServiceCategory = "storage"
	CategoryDatabase   ServiceCategory = "database"
	CategoryNetworking ServiceCategory = "networking"
	CategorySecurity   ServiceCategory = "security"
	CategoryMonitoring ServiceCategory = "monitoring"
)

// ServiceCategories is the fixed presentation order of the catalog.
var ServiceCategories = []ServiceCategory{
	CategoryCompute,
	CategoryStorage,
	CategoryDatabase,
	CategoryNetworking,
	CategorySecurity,
	CategoryMonitoring,
}

// ComplianceNone is mutually exclusive with every other compliance tag.
const ComplianceNone = "none"

// SecurityLevelHigh is the only security level the generator accepts.
const SecurityLevelHigh = "high"

// Answers accumulates the questionnaire state across wizard steps.
// Only the create phase mutates it; review takes it by value.
type Answers struct {
	ProjectName            string
	Description            string
	ApplicationType        ApplicationType
	ComputePreference      string
	TrafficVolume          string
	DatabaseType           string
	StorageNeeds           string
	DataSensitivity        string
	BudgetRange            string
	ComplianceRequirements []string
	Services               map[ServiceCategory][]string
	SecurityLevel          string
}

// NewAnswers returns an Answers with every service category present and empty.
func NewAnswers() Answers {
	services := make(map[ServiceCategory][]string, len(ServiceCategories))
	for _, c := range ServiceCategories {
		services[c] = nil
	}
	return Answers{
		Services:      services,
		SecurityLevel: SecurityLevelHigh,
	}
}

// HasService reports whether the service is selected in the category.
func (a Answers) HasService(category ServiceCategory, service string) bool {
	for _, s := range a.Services[category] {
		if s == service {
			return true
		}
	}
	return false
}

// ServicesEmpty reports whether no service is selected in any category.
func (a Answers) ServicesEmpty() bool {
	for _, c := range ServiceCategories {
		if len(a.Services[c]) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy; review phases hold a Clone so later wizard
// edits cannot leak into a frozen plan request.
func (a Answers) Clone() Answers {
	out := a
	out.ComplianceRequirements = append([]string(nil), a.ComplianceRequirements...)
	out.Services = make(map[ServiceCategory][]string, len(a.Services))
	for c, svcs := range a.Services {
		out.Services[c] = append([]string(nil), svcs...)
	}
	return out
}

// TrimmedProjectName returns ProjectName with surrounding whitespace removed.
func (a Answers) TrimmedProjectName() string {
	return strings.TrimSpace(a.ProjectName)
}
