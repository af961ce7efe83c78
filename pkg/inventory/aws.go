// Package inventory loads identity and IAM data from a real AWS account
// when the console is not running in demo mode.
package inventory

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/cloudgov/console/pkg/cloud"
	"github.com/cloudgov/console/pkg/iamrisk"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// policies equivalent to administrator or power-user access; roles
// carrying these are flagged high risk
var highRiskPolicyNames = map[string]bool{
	"AdministratorAccess": true,
	"PowerUserAccess":     true,
	"IAMFullAccess":       true,
}

type AWSInventory struct {
	log *zap.SugaredLogger
	iam *iam.Client
	sts *sts.Client
}

func NewAWSInventory(ctx context.Context, log *zap.SugaredLogger) (*AWSInventory, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}

	return &AWSInventory{
		log: log,
		iam: iam.NewFromConfig(cfg),
		sts: sts.NewFromConfig(cfg),
	}, nil
}

// Account returns the caller identity of the configured credentials.
func (a *AWSInventory) Account(ctx context.Context) (*cloud.Account, error) {
	out, err := a.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, errors.Wrap(err, "getting caller identity")
	}

	account := cloud.Account{}
	if out.Account != nil {
		account.ID = *out.Account
	}
	if out.Arn != nil {
		account.ARN = *out.Arn
	}
	if out.UserId != nil {
		account.UserID = *out.UserId
	}
	return &account, nil
}

// Roles lists the account's IAM roles with their attached managed
// policies, scoring each role as it is loaded. The per-role policy
// lookups fan out in parallel.
func (a *AWSInventory) Roles(ctx context.Context) ([]cloud.IAMRole, error) {
	out, err := a.iam.ListRoles(ctx, &iam.ListRolesInput{})
	if err != nil {
		return nil, errors.Wrap(err, "listing roles")
	}

	candidates := make([]types.Role, 0, len(out.Roles))
	for _, r := range out.Roles {
		if r.RoleName != nil && r.Arn != nil {
			candidates = append(candidates, r)
		}
	}

	roles := make([]cloud.IAMRole, len(candidates))
	g, gctx := errgroup.WithContext(ctx)

	for i, r := range candidates {
		i, r := i, r
		g.Go(func() error {
			roles[i] = a.loadRole(gctx, r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return roles, nil
}

func (a *AWSInventory) loadRole(ctx context.Context, r types.Role) cloud.IAMRole {
	role := cloud.IAMRole{
		ARN:             *r.Arn,
		Name:            *r.RoleName,
		Policies:        []cloud.IAMPolicy{},
		InlinePolicies:  []cloud.IAMPolicy{},
		TrustedEntities: []string{},
		Tags:            map[string]string{},
	}
	if r.Description != nil {
		role.Description = *r.Description
	}
	if r.CreateDate != nil {
		role.CreatedAt = *r.CreateDate
	}
	if r.PermissionsBoundary != nil && r.PermissionsBoundary.PermissionsBoundaryArn != nil {
		role.PermissionsBoundary = *r.PermissionsBoundary.PermissionsBoundaryArn
	}
	for _, t := range r.Tags {
		if t.Key != nil && t.Value != nil {
			role.Tags[*t.Key] = *t.Value
		}
	}

	attached, err := a.iam.ListAttachedRolePolicies(ctx, &iam.ListAttachedRolePoliciesInput{
		RoleName: r.RoleName,
	})
	if err != nil {
		a.log.With(zap.Error(err), "role", role.Name).Warn("listing attached policies")
	} else {
		for _, p := range attached.AttachedPolicies {
			policy := cloud.IAMPolicy{Type: cloud.PolicyAWSManaged}
			if p.PolicyArn != nil {
				policy.ID = *p.PolicyArn
			}
			if p.PolicyName != nil {
				policy.Name = *p.PolicyName
				policy.IsHighRisk = highRiskPolicyNames[*p.PolicyName]
			}
			role.Policies = append(role.Policies, policy)
		}
	}

	role.RiskScore, role.IsOverlyPermissive = iamrisk.RoleRisk(role.Policies, role.PermissionsBoundary != "")
	return role
}
