package intune

import (
	"context"

	op "github.com/sayedpfe/tenantctl/internal/output_providers"
	"github.com/sayedpfe/tenantctl/modules"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/stages"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

type ImportDevices struct {
	modules.BaseModule
}

var ImportDevicesMetadata = modules.Metadata{
	Id:          "import-devices",
	Name:        "Device Identity Import",
	Description: "Bulk-import corporate device identifiers for Intune enrollment restrictions",
	Platform:    modules.Intune,
	Authors:     []string{"sayedpfe"},
	OpsecLevel:  modules.Moderate,
	References: []string{
		"https://learn.microsoft.com/en-us/graph/api/intune-enrollment-importeddeviceidentity-importdeviceidentitylist",
	},
}

var ImportDevicesOptions = []*types.Option{
	&o.DeviceCsvOpt,
	&o.OverwriteImportedOpt,
	&o.BatchSizeOpt,
	&o.AuthMethodOpt,
	&o.TenantIDOpt,
	&o.ClientIDOpt,
	&o.ClientSecretOpt,
}

var ImportDevicesOutputProviders = []func(options []*types.Option) types.OutputProvider{
	op.NewConsoleProvider,
	op.NewJsonFileProvider,
	op.NewMarkdownFileProvider,
}

func NewImportDevices(options []*types.Option, run modules.Run) (modules.Module, error) {
	return &ImportDevices{
		BaseModule: modules.BaseModule{
			Metadata:        ImportDevicesMetadata,
			Options:         options,
			Run:             run,
			OutputProviders: modules.RenderOutputProviders(ImportDevicesOutputProviders, options),
		},
	}, nil
}

func (m *ImportDevices) Invoke() error {
	defer close(m.Run.Data)

	ctx := context.Background()

	pipeline, err := stages.ChainStages[string, types.Result](
		stages.ParseDeviceCsvStage,
		stages.ImportDevicesStage,
		stages.FormatImportOutputStage,
	)
	if err != nil {
		return err
	}

	csvPath := m.GetOptionByName(o.DeviceCsvOpt.Name).Value
	for result := range pipeline(ctx, m.Options, stages.Generator([]string{csvPath})) {
		m.Run.Data <- result
	}

	return nil
}
