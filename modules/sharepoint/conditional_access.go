package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/koltyakov/gosip/api"
	"github.com/sayedpfe/tenantctl/internal/helpers"
	"github.com/sayedpfe/tenantctl/internal/message"
	op "github.com/sayedpfe/tenantctl/internal/output_providers"
	"github.com/sayedpfe/tenantctl/modules"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

type ConditionalAccess struct {
	modules.BaseModule
}

var ConditionalAccessMetadata = modules.Metadata{
	Id:          "conditional-access",
	Name:        "Site Conditional Access",
	Description: "Bind an authentication context to a site's conditional access policy",
	Platform:    modules.SharePoint,
	Authors:     []string{"sayedpfe"},
	OpsecLevel:  modules.Moderate,
	References: []string{
		"https://learn.microsoft.com/en-us/graph/api/conditionalaccessroot-list-authenticationcontextclassreferences",
		"https://learn.microsoft.com/en-us/sharepoint/authentication-context-example",
	},
}

var ConditionalAccessOptions = []*types.Option{
	&o.SiteURLOpt,
	&o.AuthContextOpt,
	&o.StrategyOpt,
	&o.AdminURLOpt,
	&o.AutomationConfigOpt,
	&o.PollIntervalOpt,
	&o.PollTimeoutOpt,
	&o.AuthMethodOpt,
	&o.TenantIDOpt,
	&o.ClientIDOpt,
	&o.CertificatePathOpt,
	&o.CertificatePasswordOpt,
}

var ConditionalAccessOutputProviders = []func(options []*types.Option) types.OutputProvider{
	op.NewConsoleProvider,
	op.NewJsonFileProvider,
}

func NewConditionalAccess(options []*types.Option, run modules.Run) (modules.Module, error) {
	return &ConditionalAccess{
		BaseModule: modules.BaseModule{
			Metadata:        ConditionalAccessMetadata,
			Options:         options,
			Run:             run,
			OutputProviders: modules.RenderOutputProviders(ConditionalAccessOutputProviders, options),
		},
	}, nil
}

func (m *ConditionalAccess) Invoke() error {
	defer close(m.Run.Data)

	ctx := context.Background()

	siteURL := m.GetOptionByName(o.SiteURLOpt.Name).Value
	authContext := m.GetOptionByName(o.AuthContextOpt.Name).Value
	strategy := m.GetOptionByName(o.StrategyOpt.Name).Value

	cred, err := helpers.GetCredential(m.Options)
	if err != nil {
		return err
	}

	if tid, err := helpers.TenantIDFromToken(ctx, cred); err == nil {
		message.Info("Operating against tenant %s", tid)
	}

	// Any strategy fails late and opaquely when the authentication context
	// does not exist, so it is verified against the tenant first.
	acrID, err := resolveAuthContext(ctx, cred, authContext)
	if err != nil {
		return err
	}

	message.Info("Authentication context %q resolved to class reference %s", authContext, acrID)

	report := types.SitePropertyReport{
		SiteURL:                 siteURL,
		Strategy:                strategy,
		ConditionalAccessPolicy: "AuthenticationContext",
		AuthenticationContext:   authContext,
	}

	switch strategy {
	case "graph":
		err = m.applyViaGraph(ctx, cred, siteURL, acrID, &report)
	case "rest":
		err = m.applyViaRest(ctx, siteURL, acrID, &report)
	case "automation":
		err = m.applyViaAutomation(ctx, cred, siteURL, authContext, &report)
	default:
		return fmt.Errorf("unknown strategy %q", strategy)
	}
	if err != nil {
		return err
	}

	if report.Applied {
		message.Success("Conditional access bound to %s via %s", siteURL, strategy)
	} else {
		message.Warning("Strategy %s could not apply the property: %s", strategy, report.Detail)
	}

	m.Run.Data <- m.MakeResult(report,
		types.WithFilename("site-property-report.json"))

	return nil
}

// resolveAuthContext looks the requested authentication context up by display
// name or ID and returns its class reference ID (c1..c25).
func resolveAuthContext(ctx context.Context, cred azcore.TokenCredential, name string) (string, error) {
	graphClient, err := helpers.NewGraphClient(cred)
	if err != nil {
		return "", err
	}

	refs, err := graphClient.Identity().ConditionalAccess().AuthenticationContextClassReferences().Get(ctx, nil)
	if err != nil {
		helpers.HandleGraphError(err, "list authentication context class references")
		return "", err
	}

	var available []string
	for _, ref := range refs.GetValue() {
		id, displayName := "", ""
		if v := ref.GetId(); v != nil {
			id = *v
		}
		if v := ref.GetDisplayName(); v != nil {
			displayName = *v
		}
		if strings.EqualFold(name, id) || strings.EqualFold(name, displayName) {
			return id, nil
		}
		if displayName != "" {
			available = append(available, fmt.Sprintf("%s (%s)", displayName, id))
		}
	}

	return "", fmt.Errorf("authentication context %q does not exist in this tenant, available: %s",
		name, strings.Join(available, ", "))
}

// graphSitePath builds the Graph sites address for a site URL. The tenant
// root site has no server-relative path and is addressed by hostname alone.
func graphSitePath(siteURL string) (string, error) {
	parsed, err := url.Parse(siteURL)
	if err != nil {
		return "", fmt.Errorf("invalid site URL %q: %w", siteURL, err)
	}
	if parsed.Hostname() == "" {
		return "", fmt.Errorf("invalid site URL %q: no hostname", siteURL)
	}

	relative := strings.TrimRight(parsed.Path, "/")
	if relative == "" {
		return "/sites/" + parsed.Hostname(), nil
	}
	return fmt.Sprintf("/sites/%s:%s", parsed.Hostname(), relative), nil
}

// applyViaGraph tries the Graph sites surface. Graph does not expose the
// conditional access site property on every cloud, so a rejection is reported
// as an outcome rather than a failure.
func (m *ConditionalAccess) applyViaGraph(ctx context.Context, cred azcore.TokenCredential, siteURL, acrID string, report *types.SitePropertyReport) error {
	sitePath, err := graphSitePath(siteURL)
	if err != nil {
		return err
	}

	client := helpers.NewGraphRestClient(cred, helpers.GraphBaseURL)

	var site struct {
		ID string `json:"id"`
	}
	if err := client.Do(ctx, http.MethodGet, sitePath, nil, &site); err != nil {
		return fmt.Errorf("failed to resolve site: %w", err)
	}

	beta := helpers.NewGraphRestClient(cred, helpers.GraphBetaBaseURL)
	payload := map[string]string{
		"conditionalAccessPolicy":   "authenticationContext",
		"authenticationContextName": acrID,
	}

	err = beta.Do(ctx, http.MethodPatch, "/sites/"+site.ID, payload, nil)
	if err != nil {
		var restErr *helpers.GraphRestError
		if errors.As(err, &restErr) && restErr.StatusCode < 500 {
			report.Detail = fmt.Sprintf(
				"Graph rejected the site property write (%d %s), use the rest strategy instead",
				restErr.StatusCode, restErr.Code)
			return nil
		}
		return err
	}

	report.Applied = true
	return nil
}

// applyViaRest writes the property through the tenant admin center's
// SPO.Tenant REST surface, the same call Set-SPOSite issues.
func (m *ConditionalAccess) applyViaRest(ctx context.Context, siteURL, acrID string, report *types.SitePropertyReport) error {
	sp, _, err := helpers.NewSharePointClient(siteURL, m.Options)
	if err != nil {
		return err
	}
	sp = sp.Conf(&api.RequestConfig{Context: ctx})

	siteRes, err := sp.Site().Select("Id").Get()
	if err != nil {
		return fmt.Errorf("failed to get site ID: %w", err)
	}
	var siteData struct {
		Id string
	}
	if err := json.Unmarshal(siteRes.Normalized(), &siteData); err != nil {
		return fmt.Errorf("failed to decode site ID: %w", err)
	}

	adminURL := m.GetOptionByName(o.AdminURLOpt.Name).Value
	if adminURL == "" {
		adminURL, err = helpers.AdminURLFromSite(siteURL)
		if err != nil {
			return err
		}
	}

	_, adminClient, err := helpers.NewSharePointClient(adminURL, m.Options)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]interface{}{
		// 3 = AuthenticationContext in the ConditionalAccessPolicyType enum.
		"ConditionalAccessPolicy":   3,
		"AuthenticationContextName": acrID,
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/_api/SPO.Tenant/sites('%s')", strings.TrimRight(adminURL, "/"), siteData.Id)
	httpClient := api.NewHTTPClient(adminClient)
	if _, err := httpClient.Update(endpoint, bytes.NewReader(payload), &api.RequestConfig{Context: ctx}); err != nil {
		return fmt.Errorf("admin center rejected the site property write: %w", err)
	}

	report.Applied = true
	return nil
}

// applyViaAutomation fires the deployed runbook's webhook and waits for the
// job to finish. This path exists for tenants where the caller holds no
// SharePoint admin role but may invoke the automation account.
func (m *ConditionalAccess) applyViaAutomation(ctx context.Context, cred azcore.TokenCredential, siteURL, authContext string, report *types.SitePropertyReport) error {
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

	clients, err := helpers.NewAutomationClients(cred, cfg.SubscriptionID)
	if err != nil {
		return err
	}

	interval, _ := strconv.Atoi(m.GetOptionByName(o.PollIntervalOpt.Name).Value)
	timeout, _ := strconv.Atoi(m.GetOptionByName(o.PollTimeoutOpt.Name).Value)

	jobReport, err := helpers.PollJob(ctx, clients.Jobs, cfg.ResourceGroup, cfg.AccountName, jobIDs[0],
		time.Duration(interval)*time.Second, time.Duration(timeout)*time.Second)
	if err != nil {
		return err
	}

	report.Applied = jobReport.Status == "Completed"
	report.Detail = fmt.Sprintf("job %s finished with status %s", jobReport.JobID, jobReport.Status)
	if jobReport.Exception != "" {
		report.Detail += ": " + jobReport.Exception
	}

	return nil
}
