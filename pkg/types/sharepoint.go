package types

// SiteStructure is the manifest written by the sharepoint export module and
// consumed by the deploy module. The shape mirrors what the SharePoint REST
// API returns for webs, lists and fields; rows are dumped to per-list CSV
// files referenced by ItemsFile.
type SiteStructure struct {
	SiteURL     string           `json:"siteUrl"`
	WebID       string           `json:"webId"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Template    string           `json:"template"`
	ExportedAt  string           `json:"exportedAt"`
	Lists       []ListDefinition `json:"lists"`
}

type ListDefinition struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	BaseTemplate int               `json:"baseTemplate"`
	ItemCount    int               `json:"itemCount"`
	Hidden       bool              `json:"hidden"`
	Fields       []FieldDefinition `json:"fields"`
	ItemsFile    string            `json:"itemsFile,omitempty"`
}

type FieldDefinition struct {
	InternalName string   `json:"internalName"`
	Title        string   `json:"title"`
	TypeKind     int      `json:"typeKind"`
	Required     bool     `json:"required"`
	Hidden       bool     `json:"hidden"`
	ReadOnly     bool     `json:"readOnly"`
	Choices      []string `json:"choices,omitempty"`
}

// ListRows carries exported item rows between pipeline stages before the CSV
// provider writes them out.
type ListRows struct {
	ListTitle string
	Columns   []string
	Rows      [][]string
}

// ListDeployResult is the per-list outcome of replaying a manifest against a
// target site.
type ListDeployResult struct {
	Title       string `json:"title"`
	Created     bool   `json:"created"`
	FieldsAdded int    `json:"fieldsAdded"`
	ItemsAdded  int    `json:"itemsAdded"`
	Detail      string `json:"detail,omitempty"`
}

// SitePropertyReport is the outcome of a conditional access write attempt
// against a single site, one per strategy invocation.
type SitePropertyReport struct {
	SiteURL                 string `json:"siteUrl"`
	Strategy                string `json:"strategy"`
	ConditionalAccessPolicy string `json:"conditionalAccessPolicy"`
	AuthenticationContext   string `json:"authenticationContext,omitempty"`
	Applied                 bool   `json:"applied"`
	Detail                  string `json:"detail,omitempty"`
}

// RequestItem is one row of the access-request tracking list. Status and
// approval transitions on these rows are driven by a Power Automate flow
// outside of this tool; we only create and update rows.
type RequestItem struct {
	ID          int    `json:"id,omitempty"`
	Title       string `json:"title"`
	Requester   string `json:"requester"`
	Resource    string `json:"resource"`
	Status      string `json:"status"`
	ApprovedBy  string `json:"approvedBy,omitempty"`
	RequestedAt string `json:"requestedAt,omitempty"`
}
