package types

// AutomationConfig is the automation-config.json artifact written by the
// automation deploy module and read back by the trigger module.
type AutomationConfig struct {
	SubscriptionID string `json:"subscriptionId"`
	ResourceGroup  string `json:"resourceGroup"`
	Location       string `json:"location"`
	AccountName    string `json:"accountName"`
	RunbookName    string `json:"runbookName"`
	WebhookName    string `json:"webhookName"`
	WebhookURL     string `json:"webhookUrl"`
	WebhookExpiry  string `json:"webhookExpiry"`
}

// WebhookJobReport is the outcome of a fire-and-poll webhook invocation.
type WebhookJobReport struct {
	JobID     string `json:"jobId"`
	Status    string `json:"status"`
	SiteURL   string `json:"siteUrl"`
	StartedAt string `json:"startedAt,omitempty"`
	EndedAt   string `json:"endedAt,omitempty"`
	Exception string `json:"exception,omitempty"`
}
