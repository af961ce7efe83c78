package cloud

// Account identifies the AWS account the console is pointed at.
type Account struct {
	ID     string `json:"id"`
	ARN    string `json:"arn"`
	UserID string `json:"userId"`
	Demo   bool   `json:"demo"`
}
