package entra

import (
	"context"
	"fmt"
	"strconv"

	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/sayedpfe/tenantctl/internal/helpers"
	"github.com/sayedpfe/tenantctl/internal/message"
	op "github.com/sayedpfe/tenantctl/internal/output_providers"
	"github.com/sayedpfe/tenantctl/modules"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

type RoleClone struct {
	modules.BaseModule
}

var RoleCloneMetadata = modules.Metadata{
	Id:          "clone",
	Name:        "Directory Role Clone",
	Description: "Create a custom directory role from a built-in role minus a denylist of resource actions",
	Platform:    modules.Entra,
	Authors:     []string{"sayedpfe"},
	OpsecLevel:  modules.Moderate,
	References: []string{
		"https://learn.microsoft.com/en-us/graph/api/rbacapplication-post-roledefinitions",
		"https://learn.microsoft.com/en-us/entra/identity/role-based-access-control/custom-create",
	},
}

var RoleCloneOptions = []*types.Option{
	&o.SourceRoleOpt,
	&o.RoleNameOpt,
	&o.RoleDescriptionOpt,
	&o.ExcludeActionsOpt,
	&o.DryRunOpt,
	&o.AuthMethodOpt,
	&o.TenantIDOpt,
	&o.ClientIDOpt,
}

var RoleCloneOutputProviders = []func(options []*types.Option) types.OutputProvider{
	op.NewConsoleProvider,
	op.NewJsonFileProvider,
}

func NewRoleClone(options []*types.Option, run modules.Run) (modules.Module, error) {
	return &RoleClone{
		BaseModule: modules.BaseModule{
			Metadata:        RoleCloneMetadata,
			Options:         options,
			Run:             run,
			OutputProviders: modules.RenderOutputProviders(RoleCloneOutputProviders, options),
		},
	}, nil
}

func (m *RoleClone) Invoke() error {
	defer close(m.Run.Data)

	ctx := context.Background()

	sourceRole := m.GetOptionByName(o.SourceRoleOpt.Name).Value
	customName := m.GetOptionByName(o.RoleNameOpt.Name).Value
	description := m.GetOptionByName(o.RoleDescriptionOpt.Name).Value
	dryRun, _ := strconv.ParseBool(m.GetOptionByName(o.DryRunOpt.Name).Value)

	exclude := append([]string{}, DefaultExcludedActions...)
	exclude = append(exclude, SplitActionList(m.GetOptionByName(o.ExcludeActionsOpt.Name).Value)...)

	cred, err := helpers.GetCredential(m.Options)
	if err != nil {
		return err
	}

	graphClient, err := helpers.NewGraphClient(cred)
	if err != nil {
		return err
	}

	if tenantName, tenantID, err := helpers.GetTenantDetails(ctx, cred); err == nil {
		message.Info("Cloning into tenant %s (%s)", tenantName, tenantID)
	}

	definitions, err := listRoleDefinitions(ctx, graphClient, roleDefinitionFilter(sourceRole))
	if err != nil {
		helpers.HandleGraphError(err, "get source role")
		return err
	}
	if len(definitions) == 0 {
		return fmt.Errorf("no directory role named %q exists in this tenant", sourceRole)
	}
	source := definitions[0]

	requested := collectAllowedActions(source)
	if len(requested) == 0 {
		return fmt.Errorf("role %q carries no resource actions to clone", sourceRole)
	}

	kept, excluded := FilterActions(requested, exclude)
	submitted, unsupported := PartitionSupported(kept)

	report := types.RoleCloneReport{
		SourceRole:  sourceRole,
		CustomRole:  customName,
		Requested:   requested,
		Excluded:    excluded,
		Unsupported: unsupported,
		Submitted:   submitted,
	}

	message.Info("Source role %q carries %d resource actions", sourceRole, len(requested))
	if len(excluded) > 0 {
		message.Info("Excluding %d denylisted actions", len(excluded))
	}
	if len(unsupported) > 0 {
		// Custom roles only take microsoft.directory actions. The rest would
		// be rejected by the service, so they are dropped up front.
		message.Warning("Dropping %d actions outside the microsoft.directory namespace", len(unsupported))
	}
	if len(submitted) == 0 {
		return fmt.Errorf("no supported resource actions remain after filtering")
	}

	if dryRun {
		message.Info("Dry run: %s would carry %d resource actions",
			message.Emphasize(customName), len(submitted))
		m.Run.Data <- m.MakeResult(report,
			types.WithFilename("role-clone-report.json"))
		return nil
	}

	roleID, err := createCustomRole(ctx, graphClient, customName, description, submitted)
	if err != nil {
		helpers.HandleGraphError(err, "create custom role")
		return err
	}

	report.RoleID = roleID
	report.Created = true

	message.Success("Created custom role %q (%s) with %d resource actions", customName, roleID, len(submitted))

	m.Run.Data <- m.MakeResult(report,
		types.WithFilename("role-clone-report.json"))

	return nil
}

func createCustomRole(ctx context.Context, client *msgraphsdk.GraphServiceClient, name, description string, actions []string) (string, error) {
	definition := models.NewUnifiedRoleDefinition()
	definition.SetDisplayName(&name)
	if description != "" {
		definition.SetDescription(&description)
	}

	enabled := true
	definition.SetIsEnabled(&enabled)

	permission := models.NewUnifiedRolePermission()
	permission.SetAllowedResourceActions(actions)
	definition.SetRolePermissions([]models.UnifiedRolePermissionable{permission})

	created, err := client.RoleManagement().Directory().RoleDefinitions().Post(ctx, definition, nil)
	if err != nil {
		return "", err
	}

	if id := created.GetId(); id != nil {
		return *id, nil
	}
	return "", nil
}
