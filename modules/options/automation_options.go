package options

import "github.com/sayedpfe/tenantctl/pkg/types"

var SubscriptionOpt = types.Option{
	Name:        "subscription",
	Short:       "s",
	Description: "Azure subscription ID",
	Required:    true,
	Type:        types.String,
	Value:       "",
	ValueFormat: uuidFormat,
}

var ResourceGroupOpt = types.Option{
	Name:        "resource-group",
	Short:       "g",
	Description: "Resource group for the automation account",
	Required:    false,
	Type:        types.String,
	Value:       "rg-tenant-automation",
}

var LocationOpt = types.Option{
	Name:        "location",
	Short:       "l",
	Description: "Azure region for created resources",
	Required:    false,
	Type:        types.String,
	Value:       "westeurope",
}

var AccountNameOpt = types.Option{
	Name:        "account-name",
	Description: "Automation account name",
	Required:    false,
	Type:        types.String,
	Value:       "aa-spo-site-policy",
}

var RunbookNameOpt = types.Option{
	Name:        "runbook-name",
	Description: "Runbook name",
	Required:    false,
	Type:        types.String,
	Value:       "Set-SiteConditionalAccess",
}

var RunbookPathOpt = types.Option{
	Name:        "runbook-path",
	Description: "Path to the PowerShell runbook content to publish",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var AutomationConfigOpt = types.Option{
	Name:        "config",
	Description: "Path to automation-config.json",
	Required:    false,
	Type:        types.String,
	Value:       "automation-config.json",
}

var PollIntervalOpt = types.Option{
	Name:        "poll-interval",
	Description: "Seconds between webhook job status checks",
	Required:    false,
	Type:        types.Int,
	Value:       "15",
}

var PollTimeoutOpt = types.Option{
	Name:        "poll-timeout",
	Description: "Seconds to wait for the webhook job before giving up",
	Required:    false,
	Type:        types.Int,
	Value:       "600",
}
