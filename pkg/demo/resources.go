package demo

import (
	"fmt"

	"github.com/cloudgov/console/pkg/cloud"
	"github.com/google/uuid"
)

var resourceNames = map[cloud.ResourceType][]string{
	cloud.ResourceEC2:        {"web-server", "api-server", "batch-worker", "bastion"},
	cloud.ResourceS3:         {"assets", "backups", "logs-archive", "data-lake"},
	cloud.ResourceRDS:        {"orders-db", "users-db", "analytics-db"},
	cloud.ResourceLambda:     {"image-resizer", "webhook-handler", "nightly-report"},
	cloud.ResourceDynamoDB:   {"sessions", "feature-flags", "audit-trail"},
	cloud.ResourceECS:        {"checkout-service", "search-service"},
	cloud.ResourceEKS:        {"prod-cluster", "staging-cluster"},
	cloud.ResourceELB:        {"public-alb", "internal-alb"},
	cloud.ResourceCloudFront: {"cdn-main", "cdn-assets"},
	cloud.ResourceVPC:        {"prod-vpc", "shared-services-vpc"},
}

// typical monthly spend per resource type, varied per record
var baseCosts = map[cloud.ResourceType]float64{
	cloud.ResourceEC2:        420,
	cloud.ResourceS3:         85,
	cloud.ResourceRDS:        610,
	cloud.ResourceLambda:     30,
	cloud.ResourceDynamoDB:   140,
	cloud.ResourceECS:        380,
	cloud.ResourceEKS:        730,
	cloud.ResourceELB:        55,
	cloud.ResourceCloudFront: 120,
	cloud.ResourceVPC:        45,
}

var statusWeights = []cloud.ResourceStatus{
	cloud.StatusRunning, cloud.StatusRunning, cloud.StatusRunning, cloud.StatusRunning,
	cloud.StatusRunning, cloud.StatusRunning, cloud.StatusStopped, cloud.StatusStopped,
	cloud.StatusPending, cloud.StatusError,
}

// Resources synthesises n inventory records spread across the supported
// resource types and regions.
func (g *Generator) Resources(n int) []cloud.AWSResource {
	resources := make([]cloud.AWSResource, 0, n)

	for i := 0; i < n; i++ {
		rt := cloud.ResourceTypes[g.rand.Intn(len(cloud.ResourceTypes))]
		name := fmt.Sprintf("%s-%02d", g.pick(resourceNames[rt]), i%20)
		owner := g.pick(owners)
		created := g.daysAgo(30, 700)

		cost := baseCosts[rt] * (0.5 + g.rand.Float64())

		resources = append(resources, cloud.AWSResource{
			ID:           fmt.Sprintf("%s-%s", rt, uuid.NewString()[:8]),
			Name:         name,
			Type:         rt,
			Status:       statusWeights[g.rand.Intn(len(statusWeights))],
			Region:       g.pick(Regions),
			MonthlyCost:  float64(int(cost*100)) / 100,
			Owner:        owner,
			CreatedAt:    created,
			LastAccessed: g.daysAgo(0, 29),
			Tags: map[string]string{
				"env":   g.pick([]string{"prod", "staging", "dev"}),
				"owner": owner,
			},
		})
	}
	return resources
}
