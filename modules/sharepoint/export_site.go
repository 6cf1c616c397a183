package sharepoint

import (
	"context"

	op "github.com/sayedpfe/tenantctl/internal/output_providers"
	"github.com/sayedpfe/tenantctl/modules"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/stages"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

type ExportSite struct {
	modules.BaseModule
}

var ExportSiteMetadata = modules.Metadata{
	Id:          "export",
	Name:        "Site Structure Export",
	Description: "Export a site's lists, fields and items into a redeployable manifest",
	Platform:    modules.SharePoint,
	Authors:     []string{"sayedpfe"},
	OpsecLevel:  modules.Stealth,
	References: []string{
		"https://learn.microsoft.com/en-us/sharepoint/dev/sp-add-ins/working-with-lists-and-list-items-with-rest",
	},
}

var ExportSiteOptions = []*types.Option{
	&o.SiteURLOpt,
	&o.IncludeHiddenOpt,
	&o.MaxItemsOpt,
	&o.AuthMethodOpt,
	&o.TenantIDOpt,
	&o.ClientIDOpt,
	&o.CertificatePathOpt,
	&o.CertificatePasswordOpt,
}

var ExportSiteOutputProviders = []func(options []*types.Option) types.OutputProvider{
	op.NewConsoleProvider,
	op.NewJsonFileProvider,
	op.NewCsvFileProvider,
	op.NewMarkdownFileProvider,
}

func NewExportSite(options []*types.Option, run modules.Run) (modules.Module, error) {
	return &ExportSite{
		BaseModule: modules.BaseModule{
			Metadata:        ExportSiteMetadata,
			Options:         options,
			Run:             run,
			OutputProviders: modules.RenderOutputProviders(ExportSiteOutputProviders, options),
		},
	}, nil
}

func (m *ExportSite) Invoke() error {
	defer close(m.Run.Data)

	ctx := context.Background()

	pipeline, err := stages.ChainStages[string, types.Result](
		stages.ExportSiteStructureStage,
		stages.FormatSiteExportStage,
	)
	if err != nil {
		return err
	}

	siteURL := m.GetOptionByName(o.SiteURLOpt.Name).Value
	for result := range pipeline(ctx, m.Options, stages.Generator([]string{siteURL})) {
		m.Run.Data <- result
	}

	return nil
}
