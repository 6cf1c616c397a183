package automation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/automation/armautomation"
	"github.com/google/uuid"
	"github.com/sayedpfe/tenantctl/internal/helpers"
	"github.com/sayedpfe/tenantctl/internal/message"
	op "github.com/sayedpfe/tenantctl/internal/output_providers"
	"github.com/sayedpfe/tenantctl/modules"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

type Deploy struct {
	modules.BaseModule
}

var DeployMetadata = modules.Metadata{
	Id:          "deploy",
	Name:        "Runbook Deployment",
	Description: "Provision the automation account, publish the runbook and mint its webhook",
	Platform:    modules.Automation,
	Authors:     []string{"sayedpfe"},
	OpsecLevel:  modules.Moderate,
	References: []string{
		"https://learn.microsoft.com/en-us/azure/automation/automation-webhooks",
	},
}

var DeployOptions = []*types.Option{
	&o.SubscriptionOpt,
	&o.ResourceGroupOpt,
	&o.LocationOpt,
	&o.AccountNameOpt,
	&o.RunbookNameOpt,
	&o.RunbookPathOpt,
	&o.AutomationConfigOpt,
	&o.AuthMethodOpt,
	&o.TenantIDOpt,
	&o.ClientIDOpt,
	&o.ClientSecretOpt,
}

var DeployOutputProviders = []func(options []*types.Option) types.OutputProvider{
	op.NewConsoleProvider,
	op.NewJsonFileProvider,
	op.NewPlainFileProvider,
}

func NewDeploy(options []*types.Option, run modules.Run) (modules.Module, error) {
	return &Deploy{
		BaseModule: modules.BaseModule{
			Metadata:        DeployMetadata,
			Options:         options,
			Run:             run,
			OutputProviders: modules.RenderOutputProviders(DeployOutputProviders, options),
		},
	}, nil
}

func (m *Deploy) Invoke() error {
	defer close(m.Run.Data)

	ctx := context.Background()

	subscription := m.GetOptionByName(o.SubscriptionOpt.Name).Value
	resourceGroup := m.GetOptionByName(o.ResourceGroupOpt.Name).Value
	location := m.GetOptionByName(o.LocationOpt.Name).Value
	accountName := m.GetOptionByName(o.AccountNameOpt.Name).Value
	runbookName := m.GetOptionByName(o.RunbookNameOpt.Name).Value
	runbookPath := m.GetOptionByName(o.RunbookPathOpt.Name).Value
	configPath := m.GetOptionByName(o.AutomationConfigOpt.Name).Value

	content, err := os.ReadFile(runbookPath)
	if err != nil {
		return fmt.Errorf("failed to read runbook %s: %w", runbookPath, err)
	}

	cred, err := helpers.GetCredential(m.Options)
	if err != nil {
		return err
	}

	if sub, err := helpers.GetSubscriptionDetails(ctx, cred, subscription); err == nil && sub.DisplayName != nil {
		message.Info("Deploying into subscription %q", *sub.DisplayName)
	}

	if err := helpers.EnsureResourceGroup(ctx, cred, subscription, resourceGroup, location); err != nil {
		return err
	}

	clients, err := helpers.NewAutomationClients(cred, subscription)
	if err != nil {
		return err
	}

	if err := ensureAutomationAccount(ctx, clients, resourceGroup, accountName, location); err != nil {
		return err
	}
	message.Info("Automation account %q is in place", accountName)

	if err := publishRunbook(ctx, clients, resourceGroup, accountName, runbookName, location, string(content)); err != nil {
		return err
	}
	message.Info("Runbook %q published", runbookName)

	cfg := types.AutomationConfig{
		SubscriptionID: subscription,
		ResourceGroup:  resourceGroup,
		Location:       location,
		AccountName:    accountName,
		RunbookName:    runbookName,
	}

	expiry := time.Now().UTC().AddDate(1, 0, 0)
	cfg.WebhookName = fmt.Sprintf("wh-%s-%s", runbookName, uuid.NewString()[:8])
	cfg.WebhookExpiry = expiry.Format(time.RFC3339)

	cfg.WebhookURL, err = createWebhook(ctx, clients, resourceGroup, accountName, runbookName, cfg.WebhookName, expiry)
	if err != nil {
		return err
	}

	if err := writeAutomationConfig(configPath, cfg); err != nil {
		return err
	}

	message.Success("Webhook minted, URL saved to %s", configPath)
	message.Warning("The webhook URL is shown once and cannot be retrieved again, keep %s safe", configPath)

	m.Run.Data <- m.MakeResult(cfg,
		types.WithFilename("automation-deploy-report.json"))
	m.Run.Data <- m.MakeResult(cfg.WebhookURL,
		types.WithFilename("webhook-url.txt"))

	return nil
}

func ensureAutomationAccount(ctx context.Context, clients *helpers.AutomationClients, resourceGroup, name, location string) error {
	_, err := clients.Accounts.CreateOrUpdate(ctx, resourceGroup, name,
		armautomation.AccountCreateOrUpdateParameters{
			Location: to.Ptr(location),
			Properties: &armautomation.AccountCreateOrUpdateProperties{
				SKU: &armautomation.SKU{
					Name: to.Ptr(armautomation.SKUNameEnumBasic),
				},
			},
		}, nil)
	if err != nil {
		return fmt.Errorf("failed to create automation account %s: %w", name, err)
	}
	return nil
}

// publishRunbook creates the runbook shell, replaces its draft content and
// publishes the draft, the same three steps the portal import does.
func publishRunbook(ctx context.Context, clients *helpers.AutomationClients, resourceGroup, account, name, location, content string) error {
	_, err := clients.Runbooks.CreateOrUpdate(ctx, resourceGroup, account, name,
		armautomation.RunbookCreateOrUpdateParameters{
			Location: to.Ptr(location),
			Properties: &armautomation.RunbookCreateOrUpdateProperties{
				RunbookType: to.Ptr(armautomation.RunbookTypeEnumPowerShell),
				LogProgress: to.Ptr(false),
				LogVerbose:  to.Ptr(false),
			},
		}, nil)
	if err != nil {
		return fmt.Errorf("failed to create runbook %s: %w", name, err)
	}

	poller, err := clients.RunbookDrafts.BeginReplaceContent(ctx, resourceGroup, account, name, streaming.NopCloser(strings.NewReader(content)), nil)
	if err != nil {
		return fmt.Errorf("failed to replace runbook content: %w", err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("failed to replace runbook content: %w", err)
	}

	publish, err := clients.Runbooks.BeginPublish(ctx, resourceGroup, account, name, nil)
	if err != nil {
		return fmt.Errorf("failed to publish runbook: %w", err)
	}
	if _, err := publish.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("failed to publish runbook: %w", err)
	}

	return nil
}

// createWebhook generates the one-time webhook URI first, then registers the
// webhook with that URI. The service never returns the URI again.
func createWebhook(ctx context.Context, clients *helpers.AutomationClients, resourceGroup, account, runbookName, webhookName string, expiry time.Time) (string, error) {
	generated, err := clients.Webhooks.GenerateURI(ctx, resourceGroup, account, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate webhook URI: %w", err)
	}
	if generated.Value == nil || *generated.Value == "" {
		return "", fmt.Errorf("service returned an empty webhook URI")
	}
	uri := *generated.Value

	_, err = clients.Webhooks.CreateOrUpdate(ctx, resourceGroup, account, webhookName,
		armautomation.WebhookCreateOrUpdateParameters{
			Name: to.Ptr(webhookName),
			Properties: &armautomation.WebhookCreateOrUpdateProperties{
				IsEnabled:  to.Ptr(true),
				ExpiryTime: to.Ptr(expiry),
				URI:        to.Ptr(uri),
				Runbook: &armautomation.RunbookAssociationProperty{
					Name: to.Ptr(runbookName),
				},
			},
		}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create webhook %s: %w", webhookName, err)
	}

	return uri, nil
}

func writeAutomationConfig(path string, cfg types.AutomationConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// The config embeds the webhook URL, which is a credential.
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
