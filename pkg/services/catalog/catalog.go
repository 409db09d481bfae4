// Package catalog carries the static option lists the questionnaire renders:
// per-field answer tags and the categorized AWS service catalog.
package catalog

import "github.com/forge-cloud/archplan/pkg/models/domain"

// Option is one selectable answer tag with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ApplicationTypes lists the supported workload classes.
var ApplicationTypes = []Option{
	{Value: string(domain.AppWebApplication), Label: "Web Application"},
	{Value: string(domain.AppAPIMicroservice), Label: "API / Microservices"},
	{Value: string(domain.AppDataAnalytics), Label: "Data Analytics"},
	{Value: string(domain.AppMachineLearning), Label: "Machine Learning"},
	{Value: string(domain.AppMobileBackend), Label: "Mobile Backend"},
	{Value: string(domain.AppEnterprise), Label: "Enterprise Application"},
	{Value: string(domain.AppIoTPlatform), Label: "IoT Platform"},
	{Value: string(domain.AppEcommerce), Label: "E-commerce"},
}

var ComputePreferences = []Option{
	{Value: "serverless", Label: "Serverless (Lambda, Fargate)"},
	{Value: "vm", Label: "Virtual Machines (EC2)"},
	{Value: "containers", Label: "Containers (ECS, EKS)"},
	{Value: "mixed", Label: "Mixed / let the generator decide"},
}

var TrafficVolumes = []Option{
	{Value: "low", Label: "Low (under 10k requests/day)"},
	{Value: "medium", Label: "Medium (10k - 1M requests/day)"},
	{Value: "high", Label: "High (over 1M requests/day)"},
	{Value: "variable", Label: "Highly variable / bursty"},
}

var DatabaseTypes = []Option{
	{Value: "sql", Label: "Relational (RDS, Aurora)"},
	{Value: "nosql", Label: "NoSQL (DynamoDB)"},
	{Value: "warehouse", Label: "Data Warehouse (Redshift)"},
	{Value: "none", Label: "No database"},
}

var StorageNeeds = []Option{
	{Value: "minimal", Label: "Minimal (under 100 GB)"},
	{Value: "moderate", Label: "Moderate (100 GB - 1 TB)"},
	{Value: "large", Label: "Large (over 1 TB)"},
}

var DataSensitivities = []Option{
	{Value: "public", Label: "Public"},
	{Value: "internal", Label: "Internal"},
	{Value: "confidential", Label: "Confidential"},
	{Value: "restricted", Label: "Restricted / regulated"},
}

var BudgetRanges = []Option{
	{Value: "under-1k", Label: "Under $1,000/month"},
	{Value: "1k-5k", Label: "$1,000 - $5,000/month"},
	{Value: "5k-20k", Label: "$5,000 - $20,000/month"},
	{Value: "over-20k", Label: "Over $20,000/month"},
}

// ComplianceFrameworks lists the selectable frameworks. The `none` sentinel
// is mutually exclusive with every other tag.
var ComplianceFrameworks = []Option{
	{Value: domain.ComplianceNone, Label: "None"},
	{Value: "HIPAA", Label: "HIPAA"},
	{Value: "PCI", Label: "PCI-DSS"},
	{Value: "SOC2", Label: "SOC 2"},
	{Value: "GDPR", Label: "GDPR"},
	{Value: "FedRAMP", Label: "FedRAMP"},
}

// Services is the categorized AWS service catalog, keyed by category and
// presented in the fixed domain.ServiceCategories order.
var Services = map[domain.ServiceCategory][]Option{
	domain.CategoryCompute: {
		{Value: "EC2", Label: "EC2 instances"},
		{Value: "Lambda", Label: "Lambda functions"},
		{Value: "ECS", Label: "ECS containers"},
		{Value: "EKS", Label: "EKS Kubernetes"},
		{Value: "EMR", Label: "EMR big data"},
		{Value: "SageMaker", Label: "SageMaker ML"},
	},
	domain.CategoryStorage: {
		{Value: "S3", Label: "S3 object storage"},
		{Value: "EBS", Label: "EBS block storage"},
		{Value: "EFS", Label: "EFS file storage"},
		{Value: "Data Lake", Label: "S3 data lake"},
	},
	domain.CategoryDatabase: {
		{Value: "RDS", Label: "RDS relational"},
		{Value: "DynamoDB", Label: "DynamoDB NoSQL"},
		{Value: "Redshift", Label: "Redshift warehouse"},
		{Value: "ElastiCache", Label: "ElastiCache"},
		{Value: "S3", Label: "S3-backed tables"},
	},
	domain.CategoryNetworking: {
		{Value: "VPC", Label: "VPC"},
		{Value: "CloudFront", Label: "CloudFront CDN"},
		{Value: "API Gateway", Label: "API Gateway"},
		{Value: "Route 53", Label: "Route 53 DNS"},
		{Value: "ELB", Label: "Elastic Load Balancing"},
	},
	domain.CategorySecurity: {
		{Value: "IAM", Label: "IAM"},
		{Value: "KMS", Label: "KMS encryption"},
		{Value: "WAF", Label: "WAF"},
		{Value: "GuardDuty", Label: "GuardDuty"},
		{Value: "Secrets Manager", Label: "Secrets Manager"},
	},
	domain.CategoryMonitoring: {
		{Value: "CloudWatch", Label: "CloudWatch"},
		{Value: "CloudTrail", Label: "CloudTrail"},
		{Value: "X-Ray", Label: "X-Ray tracing"},
		{Value: "Config", Label: "AWS Config"},
	},
}

// ImportableServices lists the service tags an import run can scan.
var ImportableServices = []Option{
	{Value: "ec2", Label: "EC2"},
	{Value: "s3", Label: "S3"},
	{Value: "rds", Label: "RDS"},
	{Value: "lambda", Label: "Lambda"},
	{Value: "vpc", Label: "VPC"},
	{Value: "iam", Label: "IAM"},
	{Value: "dynamodb", Label: "DynamoDB"},
	{Value: "cloudfront", Label: "CloudFront"},
}

// Contains reports whether value is one of the options.
func Contains(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

// CategoryOptions returns the catalog entries for a category.
func CategoryOptions(c domain.ServiceCategory) []Option {
	return Services[c]
}
