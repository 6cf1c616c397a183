package options

import "github.com/sayedpfe/tenantctl/pkg/types"

var SourceRoleOpt = types.Option{
	Name:        "source-role",
	Description: "Display name of the built-in directory role to clone",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var RoleNameOpt = types.Option{
	Name:        "name",
	Short:       "n",
	Description: "Display name for the new custom role",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var RoleDescriptionOpt = types.Option{
	Name:        "description",
	Description: "Description for the new custom role",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var ExcludeActionsOpt = types.Option{
	Name:        "exclude",
	Description: "Comma-separated resource actions to exclude, in addition to the built-in denylist",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var RoleFilterOpt = types.Option{
	Name:        "role-filter",
	Description: "Only list roles whose display name contains this value",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var DryRunOpt = types.Option{
	Name:        "dry-run",
	Description: "Report the filtered permission set without creating the role",
	Required:    false,
	Type:        types.Bool,
	Value:       "false",
}
