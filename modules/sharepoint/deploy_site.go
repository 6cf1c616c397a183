package sharepoint

import (
	"context"

	op "github.com/sayedpfe/tenantctl/internal/output_providers"
	"github.com/sayedpfe/tenantctl/modules"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/stages"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

type DeploySite struct {
	modules.BaseModule
}

var DeploySiteMetadata = modules.Metadata{
	Id:          "deploy",
	Name:        "Site Structure Deploy",
	Description: "Replay an exported site manifest, its lists, fields and items, against a target site",
	Platform:    modules.SharePoint,
	Authors:     []string{"sayedpfe"},
	OpsecLevel:  modules.Moderate,
	References: []string{
		"https://learn.microsoft.com/en-us/sharepoint/dev/sp-add-ins/working-with-lists-and-list-items-with-rest",
	},
}

var DeploySiteOptions = []*types.Option{
	types.WithDescription(o.SiteURLOpt, "Target site the manifest is replayed against"),
	&o.ManifestOpt,
	&o.AuthMethodOpt,
	&o.TenantIDOpt,
	&o.ClientIDOpt,
	&o.CertificatePathOpt,
	&o.CertificatePasswordOpt,
}

var DeploySiteOutputProviders = []func(options []*types.Option) types.OutputProvider{
	op.NewConsoleProvider,
	op.NewJsonFileProvider,
	op.NewMarkdownFileProvider,
}

func NewDeploySite(options []*types.Option, run modules.Run) (modules.Module, error) {
	return &DeploySite{
		BaseModule: modules.BaseModule{
			Metadata:        DeploySiteMetadata,
			Options:         options,
			Run:             run,
			OutputProviders: modules.RenderOutputProviders(DeploySiteOutputProviders, options),
		},
	}, nil
}

func (m *DeploySite) Invoke() error {
	defer close(m.Run.Data)

	ctx := context.Background()

	pipeline, err := stages.ChainStages[string, types.Result](
		stages.DeploySiteStructureStage,
		stages.FormatSiteDeployStage,
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
