package cloud

import "time"

// ResourceType is the AWS service kind of an inventoried resource.
type ResourceType string

const (
	ResourceEC2        ResourceType = "ec2"
	ResourceS3         ResourceType = "s3"
	ResourceRDS        ResourceType = "rds"
	ResourceLambda     ResourceType = "lambda"
	ResourceDynamoDB   ResourceType = "dynamodb"
	ResourceECS        ResourceType = "ecs"
	ResourceEKS        ResourceType = "eks"
	ResourceELB        ResourceType = "elb"
	ResourceCloudFront ResourceType = "cloudfront"
	ResourceVPC        ResourceType = "vpc"
)

// ResourceTypes lists every recognised resource type.
var ResourceTypes = []ResourceType{
	ResourceEC2, ResourceS3, ResourceRDS, ResourceLambda, ResourceDynamoDB,
	ResourceECS, ResourceEKS, ResourceELB, ResourceCloudFront, ResourceVPC,
}

func (t ResourceType) Valid() bool {
	for _, rt := range ResourceTypes {
		if t == rt {
			return true
		}
	}
	return false
}

type ResourceStatus string

const (
	StatusRunning    ResourceStatus = "running"
	StatusStopped    ResourceStatus = "stopped"
	StatusTerminated ResourceStatus = "terminated"
	StatusPending    ResourceStatus = "pending"
	StatusError      ResourceStatus = "error"
)

func (s ResourceStatus) Valid() bool {
	switch s {
	case StatusRunning, StatusStopped, StatusTerminated, StatusPending, StatusError:
		return true
	}
	return false
}

// AWSResource is a standalone inventory record. There is no cross-record
// referential integrity to maintain.
type AWSResource struct {
	ID           string            `json:"id" storm:"id" dynamodbav:"id"`
	Name         string            `json:"name" dynamodbav:"name"`
	Type         ResourceType      `json:"type" dynamodbav:"type"`
	Status       ResourceStatus    `json:"status" dynamodbav:"status"`
	Region       string            `json:"region" dynamodbav:"region"`
	MonthlyCost  float64           `json:"monthlyCost" dynamodbav:"monthlyCost"`
	Owner        string            `json:"owner" dynamodbav:"owner"`
	CreatedAt    time.Time         `json:"createdAt" dynamodbav:"createdAt"`
	LastAccessed time.Time         `json:"lastAccessed" dynamodbav:"lastAccessed"`
	Tags         map[string]string `json:"tags" dynamodbav:"tags"`
	Metadata     map[string]string `json:"metadata,omitempty" dynamodbav:"metadata,omitempty"`
}
