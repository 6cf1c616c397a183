package options

import (
	"regexp"

	"github.com/sayedpfe/tenantctl/pkg/types"
)

var SiteURLOpt = types.Option{
	Name:        "site-url",
	Short:       "u",
	Description: "SharePoint Online site URL",
	Required:    true,
	Type:        types.String,
	Value:       "",
	ValueFormat: regexp.MustCompile(`^https://[a-zA-Z0-9-]+\.sharepoint\.com(/.*)?$`),
}

var AdminURLOpt = types.Option{
	Name:        "admin-url",
	Description: "SharePoint admin center URL (derived from the site URL when omitted)",
	Required:    false,
	Type:        types.String,
	Value:       "",
	ValueFormat: regexp.MustCompile(`^https://[a-zA-Z0-9-]+-admin\.sharepoint\.com/?$`),
}

var ManifestOpt = types.Option{
	Name:        "manifest",
	Short:       "m",
	Description: "Path to a SiteStructure.json manifest",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var AuthContextOpt = types.Option{
	Name:        "auth-context",
	Description: "Authentication context class reference name to bind to the site",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var StrategyOpt = types.Option{
	Name:        "strategy",
	Description: "How to apply the site property: graph, rest or automation",
	Required:    false,
	Type:        types.String,
	Value:       "rest",
	ValueList:   []string{"graph", "rest", "automation"},
}

var ListTitleOpt = types.Option{
	Name:        "list-title",
	Description: "Title of the SharePoint list",
	Required:    false,
	Type:        types.String,
	Value:       "Access Requests",
}

var IncludeHiddenOpt = types.Option{
	Name:        "include-hidden",
	Description: "Include hidden lists in the export",
	Required:    false,
	Type:        types.Bool,
	Value:       "false",
}

var MaxItemsOpt = types.Option{
	Name:        "max-items",
	Description: "Maximum number of items to export per list (0 = all)",
	Required:    false,
	Type:        types.Int,
	Value:       "0",
}

var RequestActionOpt = types.Option{
	Name:        "action",
	Short:       "a",
	Description: "What to do with the tracking list: create it, add a request or set a request's status",
	Required:    true,
	Type:        types.String,
	Value:       "",
	ValueList:   []string{"create", "add", "set-status"},
}

var ApprovedByOpt = types.Option{
	Name:        "approved-by",
	Description: "UPN of the approver recorded on the status change",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var RequestTitleOpt = types.Option{
	Name:        "title",
	Description: "Title for the tracked request",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var RequesterOpt = types.Option{
	Name:        "requester",
	Description: "UPN of the requesting user",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var ResourceOpt = types.Option{
	Name:        "resource",
	Description: "Resource the request refers to",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var ItemIDOpt = types.Option{
	Name:        "item-id",
	Description: "SharePoint list item ID",
	Required:    true,
	Type:        types.Int,
	Value:       "",
}

var StatusOpt = types.Option{
	Name:        "status",
	Description: "New status value for the tracked request",
	Required:    true,
	Type:        types.String,
	Value:       "",
	ValueList:   []string{"Pending", "Approved", "Rejected", "Completed"},
}
