package demo

import (
	"fmt"

	"github.com/cloudgov/console/pkg/cloud"
	"github.com/cloudgov/console/pkg/iamrisk"
	"github.com/google/uuid"
)

// AccountID is the synthetic account the demo dataset lives in.
const AccountID = "123456789012"

// Policies returns the managed policy catalogue. High-risk flags are
// assigned per policy for administrator or power-user equivalents.
func (g *Generator) Policies() []cloud.IAMPolicy {
	allow := func(actions []string, resources []string) cloud.PolicyDocument {
		return cloud.PolicyDocument{
			Version: "2012-10-17",
			Statement: []cloud.PolicyStatement{
				{Effect: "Allow", Action: actions, Resource: resources},
			},
		}
	}

	return []cloud.IAMPolicy{
		{
			ID:                 "arn:aws:iam::aws:policy/AdministratorAccess",
			Name:               "AdministratorAccess",
			Type:               cloud.PolicyAWSManaged,
			Document:           allow([]string{"*"}, []string{"*"}),
			AttachedRolesCount: 2,
			IsHighRisk:         true,
		},
		{
			ID:                 "arn:aws:iam::aws:policy/PowerUserAccess",
			Name:               "PowerUserAccess",
			Type:               cloud.PolicyAWSManaged,
			Document:           allow([]string{"*"}, []string{"*"}),
			AttachedRolesCount: 3,
			IsHighRisk:         true,
		},
		{
			ID:                 "arn:aws:iam::aws:policy/AmazonS3ReadOnlyAccess",
			Name:               "AmazonS3ReadOnlyAccess",
			Type:               cloud.PolicyAWSManaged,
			Document:           allow([]string{"s3:Get*", "s3:List*"}, []string{"*"}),
			AttachedRolesCount: 6,
		},
		{
			ID:                 "arn:aws:iam::aws:policy/CloudWatchReadOnlyAccess",
			Name:               "CloudWatchReadOnlyAccess",
			Type:               cloud.PolicyAWSManaged,
			Document:           allow([]string{"cloudwatch:Get*", "cloudwatch:List*", "cloudwatch:Describe*"}, []string{"*"}),
			AttachedRolesCount: 4,
		},
		{
			ID:                 fmt.Sprintf("arn:aws:iam::%s:policy/deploy-pipeline", AccountID),
			Name:               "deploy-pipeline",
			Type:               cloud.PolicyCustomerManaged,
			Document:           allow([]string{"ecs:UpdateService", "ecr:GetDownloadUrlForLayer", "ecr:BatchGetImage"}, []string{"*"}),
			AttachedRolesCount: 1,
		},
		{
			ID:                 fmt.Sprintf("arn:aws:iam::%s:policy/data-lake-reader", AccountID),
			Name:               "data-lake-reader",
			Type:               cloud.PolicyCustomerManaged,
			Document:           allow([]string{"s3:GetObject", "athena:StartQueryExecution"}, []string{fmt.Sprintf("arn:aws:s3:::data-lake-%s/*", AccountID)}),
			AttachedRolesCount: 2,
		},
	}
}

type roleTemplate struct {
	name        string
	description string
	policies    []string
	boundary    string
	trusted     []string
}

var roleTemplates = []roleTemplate{
	{
		name:        "org-admin",
		description: "Break-glass administrator role",
		policies:    []string{"AdministratorAccess"},
		trusted:     []string{fmt.Sprintf("arn:aws:iam::%s:root", AccountID)},
	},
	{
		name:        "deploy-pipeline",
		description: "Assumed by CI to roll out services",
		policies:    []string{"PowerUserAccess", "deploy-pipeline"},
		boundary:    fmt.Sprintf("arn:aws:iam::%s:policy/deploy-boundary", AccountID),
		trusted:     []string{"codebuild.amazonaws.com"},
	},
	{
		name:        "data-analyst",
		description: "Read access to the data lake",
		policies:    []string{"AmazonS3ReadOnlyAccess", "data-lake-reader"},
		trusted:     []string{fmt.Sprintf("arn:aws:iam::%s:root", AccountID)},
	},
	{
		name:        "monitoring",
		description: "Dashboards and alerting",
		policies:    []string{"CloudWatchReadOnlyAccess"},
		trusted:     []string{"ec2.amazonaws.com"},
	},
}

// Roles builds the demo role set. Risk scores are computed here, at
// creation time, and stored on the records.
func (g *Generator) Roles(policies []cloud.IAMPolicy) []cloud.IAMRole {
	byName := map[string]cloud.IAMPolicy{}
	for _, p := range policies {
		byName[p.Name] = p
	}

	roles := make([]cloud.IAMRole, 0, len(roleTemplates))
	for _, tpl := range roleTemplates {
		attached := []cloud.IAMPolicy{}
		for _, name := range tpl.policies {
			if p, ok := byName[name]; ok {
				attached = append(attached, p)
			}
		}

		score, overly := iamrisk.RoleRisk(attached, tpl.boundary != "")
		lastUsed := g.daysAgo(0, 60)

		roles = append(roles, cloud.IAMRole{
			ARN:                 fmt.Sprintf("arn:aws:iam::%s:role/%s", AccountID, tpl.name),
			Name:                tpl.name,
			Description:         tpl.description,
			CreatedAt:           g.daysAgo(90, 700),
			LastUsed:            &lastUsed,
			Policies:            attached,
			InlinePolicies:      []cloud.IAMPolicy{},
			IsOverlyPermissive:  overly,
			TrustedEntities:     tpl.trusted,
			PermissionsBoundary: tpl.boundary,
			Tags:                map[string]string{"managed-by": "terraform"},
			RiskScore:           score,
		})
	}
	return roles
}

type userTemplate struct {
	username string
	level    cloud.AccessLevel
	mfa      bool
	roles    []string
}

var userTemplates = []userTemplate{
	{"alice", cloud.AccessAdmin, true, []string{"org-admin"}},
	{"bob", cloud.AccessPowerUser, true, []string{"deploy-pipeline"}},
	{"carol", cloud.AccessPowerUser, false, []string{"deploy-pipeline", "monitoring"}},
	{"dave", cloud.AccessReadOnly, true, []string{"data-analyst"}},
	{"erin", cloud.AccessReadOnly, false, []string{"monitoring"}},
}

// Users builds the demo user set, scoring each at creation time.
func (g *Generator) Users() []cloud.IAMUser {
	users := make([]cloud.IAMUser, 0, len(userTemplates))
	for _, tpl := range userTemplates {
		users = append(users, cloud.IAMUser{
			ID:           uuid.NewString(),
			Username:     tpl.username,
			ARN:          fmt.Sprintf("arn:aws:iam::%s:user/%s", AccountID, tpl.username),
			Email:        tpl.username + "@example.com",
			Roles:        tpl.roles,
			Permissions:  []string{},
			MFAEnabled:   tpl.mfa,
			LastActivity: g.daysAgo(0, 14),
			AccessLevel:  tpl.level,
			RiskScore:    iamrisk.UserRisk(tpl.level, tpl.mfa),
		})
	}
	return users
}
