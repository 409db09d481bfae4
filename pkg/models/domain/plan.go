package domain

// Plan is the artifact returned by a generator plan or deploy request.
// It is a value object, frozen once the workflow enters review.
type Plan struct {
	EstimatedCost        float64
	ResourcesPlanned     int
	SecurityFeatures     []string
	ComplianceFrameworks []string
	IaCCode              string
	DeploymentID         string
	NextSteps            []string
}

// DefaultSecurityFeatures is rendered when the generator reports none.
var DefaultSecurityFeatures = []string{
	"Enhanced IAM policies with least-privilege access",
	"VPC with private subnets and network ACLs",
	"CloudTrail logging across all regions",
	"GuardDuty threat detection",
	"AWS Config compliance monitoring",
	"KMS encryption for data at rest",
	"Security Hub centralized findings",
}

// DefaultNextSteps backs the export document when the plan omits its own.
var DefaultNextSteps = []string{
	"Review the generated infrastructure code before deploying",
	"Validate AWS credentials for the target account",
	"Deploy to a staging environment and verify the workload",
}
