package options

import "github.com/sayedpfe/tenantctl/pkg/types"

var OutputOpt = types.Option{
	Name:        "output",
	Short:       "o",
	Description: "Output directory for generated artifacts",
	Required:    false,
	Type:        types.String,
	Value:       "tenantctl-output",
}

var FileNameOpt = types.Option{
	Name:        "filename",
	Short:       "f",
	Description: "File name for generated artifacts",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var JqFilterOpt = types.Option{
	Name:        "jq",
	Description: "jq expression applied to JSON results before writing",
	Required:    false,
	Type:        types.String,
	Value:       "",
}
