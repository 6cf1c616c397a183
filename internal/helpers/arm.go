package helpers

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/automation/armautomation"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// GetSubscriptionDetails gets details about an Azure subscription
func GetSubscriptionDetails(ctx context.Context, cred azcore.TokenCredential, subscriptionID string) (*armsubscriptions.ClientGetResponse, error) {
	subsClient, err := armsubscriptions.NewClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	sub, err := subsClient.Get(ctx, subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription details: %w", err)
	}

	return &sub, nil
}

// EnsureResourceGroup creates the resource group when it does not exist yet.
func EnsureResourceGroup(ctx context.Context, cred azcore.TokenCredential, subscriptionID, name, location string) error {
	rgClient, err := armresources.NewResourceGroupsClient(subscriptionID, cred, nil)
	if err != nil {
		return fmt.Errorf("failed to create resource groups client: %w", err)
	}

	existing, err := rgClient.CheckExistence(ctx, name, nil)
	if err == nil && existing.Success {
		return nil
	}

	_, err = rgClient.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create resource group %s: %w", name, err)
	}

	return nil
}

// AutomationClients bundles the armautomation clients the automation modules
// need so each module does not rebuild them one by one.
type AutomationClients struct {
	Accounts      *armautomation.AccountClient
	Runbooks      *armautomation.RunbookClient
	RunbookDrafts *armautomation.RunbookDraftClient
	Webhooks      *armautomation.WebhookClient
	Jobs          *armautomation.JobClient
}

func NewAutomationClients(cred azcore.TokenCredential, subscriptionID string) (*AutomationClients, error) {
	accounts, err := armautomation.NewAccountClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create automation account client: %w", err)
	}
	runbooks, err := armautomation.NewRunbookClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create runbook client: %w", err)
	}
	drafts, err := armautomation.NewRunbookDraftClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create runbook draft client: %w", err)
	}
	webhooks, err := armautomation.NewWebhookClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook client: %w", err)
	}
	jobs, err := armautomation.NewJobClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create job client: %w", err)
	}

	return &AutomationClients{
		Accounts:      accounts,
		Runbooks:      runbooks,
		RunbookDrafts: drafts,
		Webhooks:      webhooks,
		Jobs:          jobs,
	}, nil
}
