package types

// RoleDefinitionSummary is the flattened view of a directory role definition
// used by the entra role list module.
type RoleDefinitionSummary struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description,omitempty"`
	IsBuiltIn   bool     `json:"isBuiltIn"`
	IsEnabled   bool     `json:"isEnabled"`
	Actions     []string `json:"actions"`
}

// RoleCloneReport records what the role clone module did with each permission
// of the source role: kept, excluded by the denylist, or rejected locally
// because the namespace is not supported for custom roles.
type RoleCloneReport struct {
	SourceRole  string   `json:"sourceRole"`
	CustomRole  string   `json:"customRole"`
	RoleID      string   `json:"roleId,omitempty"`
	Requested   []string `json:"requested"`
	Excluded    []string `json:"excluded,omitempty"`
	Unsupported []string `json:"unsupported,omitempty"`
	Submitted   []string `json:"submitted"`
	Created     bool     `json:"created"`
}
