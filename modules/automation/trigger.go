package automation

import (
	"context"
	"strconv"
	"time"

	"github.com/sayedpfe/tenantctl/internal/helpers"
	"github.com/sayedpfe/tenantctl/internal/message"
	op "github.com/sayedpfe/tenantctl/internal/output_providers"
	"github.com/sayedpfe/tenantctl/modules"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

type Trigger struct {
	modules.BaseModule
}

var TriggerMetadata = modules.Metadata{
	Id:          "trigger",
	Name:        "Runbook Trigger",
	Description: "Fire the deployed runbook's webhook for a site and wait for the job to finish",
	Platform:    modules.Automation,
	Authors:     []string{"sayedpfe"},
	OpsecLevel:  modules.Moderate,
	References: []string{
		"https://learn.microsoft.com/en-us/azure/automation/automation-webhooks",
	},
}

var TriggerOptions = []*types.Option{
	&o.SiteURLOpt,
	&o.AuthContextOpt,
	&o.AutomationConfigOpt,
	&o.PollIntervalOpt,
	&o.PollTimeoutOpt,
	&o.AuthMethodOpt,
	&o.TenantIDOpt,
	&o.ClientIDOpt,
	&o.ClientSecretOpt,
}

var TriggerOutputProviders = []func(options []*types.Option) types.OutputProvider{
	op.NewConsoleProvider,
	op.NewJsonFileProvider,
}

func NewTrigger(options []*types.Option, run modules.Run) (modules.Module, error) {
	return &Trigger{
		BaseModule: modules.BaseModule{
			Metadata:        TriggerMetadata,
			Options:         options,
			Run:             run,
			OutputProviders: modules.RenderOutputProviders(TriggerOutputProviders, options),
		},
	}, nil
}

func (m *Trigger) Invoke() error {
	defer close(m.Run.Data)

	ctx := context.Background()

	siteURL := m.GetOptionByName(o.SiteURLOpt.Name).Value
	authContext := m.GetOptionByName(o.AuthContextOpt.Name).Value

	cfg, err := helpers.ReadAutomationConfig(m.GetOptionByName(o.AutomationConfigOpt.Name).Value)
	if err != nil {
		return err
	}

	jobIDs, err := helpers.TriggerWebhook(ctx, cfg.WebhookURL, map[string]string{
		"siteUrl":                   siteURL,
		"authenticationContextName": authContext,
	})
	if err != nil {
		return err
	}

	message.Info("Webhook accepted, job %s started", jobIDs[0])

	cred, err := helpers.GetCredential(m.Options)
	if err != nil {
		return err
	}

	clients, err := helpers.NewAutomationClients(cred, cfg.SubscriptionID)
	if err != nil {
		return err
	}

	interval, _ := strconv.Atoi(m.GetOptionByName(o.PollIntervalOpt.Name).Value)
	timeout, _ := strconv.Atoi(m.GetOptionByName(o.PollTimeoutOpt.Name).Value)

	for _, jobID := range jobIDs {
		report, err := helpers.PollJob(ctx, clients.Jobs, cfg.ResourceGroup, cfg.AccountName, jobID,
			time.Duration(interval)*time.Second, time.Duration(timeout)*time.Second)
		report.SiteURL = siteURL
		if err != nil {
			message.Error("Job %s: %v", jobID, err)
		} else if report.Status == "Completed" {
			message.Success("Job %s completed", jobID)
		} else {
			message.Warning("Job %s finished with status %s", jobID, report.Status)
		}

		m.Run.Data <- m.MakeResult(report,
			types.WithFilename("webhook-job-report.json"))

		if err != nil {
			return err
		}
	}

	return nil
}
