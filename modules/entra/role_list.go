package entra

import (
	"context"
	"fmt"
	"strings"

	abstractions "github.com/microsoft/kiota-abstractions-go"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/rolemanagement"
	msgraphcore "github.com/microsoftgraph/msgraph-sdk-go-core"
	"github.com/sayedpfe/tenantctl/internal/helpers"
	"github.com/sayedpfe/tenantctl/internal/message"
	op "github.com/sayedpfe/tenantctl/internal/output_providers"
	"github.com/sayedpfe/tenantctl/modules"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

type RoleList struct {
	modules.BaseModule
}

var RoleListMetadata = modules.Metadata{
	Id:          "list",
	Name:        "Directory Role List",
	Description: "List Entra ID directory role definitions and their resource actions",
	Platform:    modules.Entra,
	Authors:     []string{"sayedpfe"},
	OpsecLevel:  modules.Stealth,
	References: []string{
		"https://learn.microsoft.com/en-us/graph/api/rbacapplication-list-roledefinitions",
	},
}

var RoleListOptions = []*types.Option{
	&o.RoleFilterOpt,
	&o.AuthMethodOpt,
	&o.TenantIDOpt,
	&o.ClientIDOpt,
}

var RoleListOutputProviders = []func(options []*types.Option) types.OutputProvider{
	op.NewConsoleProvider,
	op.NewJsonFileProvider,
}

func NewRoleList(options []*types.Option, run modules.Run) (modules.Module, error) {
	return &RoleList{
		BaseModule: modules.BaseModule{
			Metadata:        RoleListMetadata,
			Options:         options,
			Run:             run,
			OutputProviders: modules.RenderOutputProviders(RoleListOutputProviders, options),
		},
	}, nil
}

func (m *RoleList) Invoke() error {
	defer close(m.Run.Data)

	ctx := context.Background()

	cred, err := helpers.GetCredential(m.Options)
	if err != nil {
		return err
	}

	graphClient, err := helpers.NewGraphClient(cred)
	if err != nil {
		return err
	}

	definitions, err := listRoleDefinitions(ctx, graphClient, "")
	if err != nil {
		helpers.HandleGraphError(err, "list role definitions")
		return err
	}

	filter := strings.ToLower(m.GetOptionByName(o.RoleFilterOpt.Name).Value)

	var summaries []types.RoleDefinitionSummary
	for _, def := range definitions {
		summary := summarizeRoleDefinition(def)
		if filter != "" && !strings.Contains(strings.ToLower(summary.DisplayName), filter) {
			continue
		}
		summaries = append(summaries, summary)
	}

	message.Info("Found %d directory role definitions", len(summaries))

	m.Run.Data <- m.MakeResult(summaries,
		types.WithFilename("role-definitions.json"))

	return nil
}

func listRoleDefinitions(ctx context.Context, client *msgraphsdk.GraphServiceClient, filter string) ([]models.UnifiedRoleDefinitionable, error) {
	headers := abstractions.NewRequestHeaders()
	headers.Add("ConsistencyLevel", "eventual")

	config := &rolemanagement.DirectoryRoleDefinitionsRequestBuilderGetRequestConfiguration{
		Headers: headers,
	}
	if filter != "" {
		config.QueryParameters = &rolemanagement.DirectoryRoleDefinitionsRequestBuilderGetQueryParameters{
			Filter: &filter,
		}
	}

	result, err := client.RoleManagement().Directory().RoleDefinitions().Get(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to get role definitions: %w", err)
	}

	var definitions []models.UnifiedRoleDefinitionable

	pageIterator, err := msgraphcore.NewPageIterator[models.UnifiedRoleDefinitionable](
		result,
		client.GetAdapter(),
		models.CreateUnifiedRoleDefinitionCollectionResponseFromDiscriminatorValue)
	if err != nil {
		return nil, fmt.Errorf("failed to create page iterator: %w", err)
	}

	err = pageIterator.Iterate(ctx, func(def models.UnifiedRoleDefinitionable) bool {
		definitions = append(definitions, def)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to page role definitions: %w", err)
	}

	return definitions, nil
}

func summarizeRoleDefinition(def models.UnifiedRoleDefinitionable) types.RoleDefinitionSummary {
	summary := types.RoleDefinitionSummary{}

	if id := def.GetId(); id != nil {
		summary.ID = *id
	}
	if name := def.GetDisplayName(); name != nil {
		summary.DisplayName = *name
	}
	if desc := def.GetDescription(); desc != nil {
		summary.Description = *desc
	}
	if builtIn := def.GetIsBuiltIn(); builtIn != nil {
		summary.IsBuiltIn = *builtIn
	}
	if enabled := def.GetIsEnabled(); enabled != nil {
		summary.IsEnabled = *enabled
	}

	summary.Actions = collectAllowedActions(def)
	return summary
}

// collectAllowedActions flattens every rolePermission entry of a definition
// into one action list.
func collectAllowedActions(def models.UnifiedRoleDefinitionable) []string {
	var actions []string
	for _, perm := range def.GetRolePermissions() {
		actions = append(actions, perm.GetAllowedResourceActions()...)
	}
	return actions
}

// roleDefinitionFilter builds the odata filter for an exact display name.
func roleDefinitionFilter(displayName string) string {
	escaped := strings.ReplaceAll(displayName, "'", "''")
	return "displayName eq '" + escaped + "'"
}
