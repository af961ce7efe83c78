package demo

import (
	"fmt"

	"github.com/cloudgov/console/pkg/cloud"
	"github.com/cloudgov/console/pkg/crypto"
)

type findingTemplate struct {
	title        string
	description  string
	severity     cloud.Severity
	resourceType cloud.ResourceType
	remediation  string
}

var findingTemplates = []findingTemplate{
	{
		title:        "S3 bucket allows public read access",
		description:  "The bucket ACL grants READ to AllUsers, exposing object contents to the internet.",
		severity:     cloud.SeverityCritical,
		resourceType: cloud.ResourceS3,
		remediation:  "Enable Block Public Access at the bucket level and remove the AllUsers grant.",
	},
	{
		title:        "Root account has no MFA device",
		description:  "The account root user can sign in with a password alone.",
		severity:     cloud.SeverityCritical,
		resourceType: cloud.ResourceVPC,
		remediation:  "Register a hardware or virtual MFA device for the root user.",
	},
	{
		title:        "Security group open to 0.0.0.0/0 on port 22",
		description:  "An ingress rule allows SSH from any address.",
		severity:     cloud.SeverityHigh,
		resourceType: cloud.ResourceEC2,
		remediation:  "Restrict the rule to known CIDR ranges or move access behind SSM Session Manager.",
	},
	{
		title:        "RDS instance is not encrypted at rest",
		description:  "Storage encryption was not enabled when the instance was created.",
		severity:     cloud.SeverityHigh,
		resourceType: cloud.ResourceRDS,
		remediation:  "Snapshot the instance and restore it with encryption enabled.",
	},
	{
		title:        "IAM access key older than 90 days",
		description:  "A long-lived access key has not been rotated within the rotation window.",
		severity:     cloud.SeverityMedium,
		resourceType: cloud.ResourceEC2,
		remediation:  "Rotate the key and update any stored credentials.",
	},
	{
		title:        "CloudFront distribution allows TLS 1.0",
		description:  "The viewer security policy accepts deprecated TLS versions.",
		severity:     cloud.SeverityMedium,
		resourceType: cloud.ResourceCloudFront,
		remediation:  "Set the minimum viewer protocol version to TLSv1.2_2021.",
	},
	{
		title:        "Lambda function uses a deprecated runtime",
		description:  "The configured runtime no longer receives security patches.",
		severity:     cloud.SeverityLow,
		resourceType: cloud.ResourceLambda,
		remediation:  "Migrate the function to a supported runtime version.",
	},
	{
		title:        "DynamoDB table has no point-in-time recovery",
		description:  "Continuous backups are disabled for the table.",
		severity:     cloud.SeverityLow,
		resourceType: cloud.ResourceDynamoDB,
		remediation:  "Enable point-in-time recovery on the table.",
	},
}

var findingStatusWeights = []cloud.FindingStatus{
	cloud.FindingOpen, cloud.FindingOpen, cloud.FindingOpen, cloud.FindingOpen,
	cloud.FindingInProgress, cloud.FindingInProgress,
	cloud.FindingResolved, cloud.FindingDismissed,
}

// Findings instantiates n findings from the template catalogue, biased
// towards open status.
func (g *Generator) Findings(n int) []cloud.SecurityFinding {
	findings := make([]cloud.SecurityFinding, 0, n)

	for i := 0; i < n; i++ {
		tpl := findingTemplates[i%len(findingTemplates)]

		id, err := crypto.GenerateShortID()
		if err != nil {
			// crypto/rand availability is asserted at init, so this
			// only happens if the PRNG breaks mid-flight
			id = fmt.Sprintf("%08d", i)
		}

		findings = append(findings, cloud.SecurityFinding{
			ID:           "finding-" + id,
			Title:        tpl.title,
			Description:  tpl.description,
			Severity:     tpl.severity,
			ResourceID:   fmt.Sprintf("%s-%04d", tpl.resourceType, g.rand.Intn(10000)),
			ResourceType: tpl.resourceType,
			DetectedAt:   g.daysAgo(0, 30),
			Status:       findingStatusWeights[g.rand.Intn(len(findingStatusWeights))],
			Remediation:  tpl.remediation,
		})
	}
	return findings
}
