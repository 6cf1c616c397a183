package options

import "github.com/sayedpfe/tenantctl/pkg/types"

var DeviceCsvOpt = types.Option{
	Name:        "csv",
	Short:       "c",
	Description: "CSV of device identities: identifier,type,description",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var OverwriteImportedOpt = types.Option{
	Name:        "overwrite",
	Description: "Overwrite identities that were imported before",
	Required:    false,
	Type:        types.Bool,
	Value:       "false",
}

var BatchSizeOpt = types.Option{
	Name:        "batch-size",
	Description: "Number of identities submitted per request",
	Required:    false,
	Type:        types.Int,
	Value:       "100",
}
