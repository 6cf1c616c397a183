package cmd

import (
	"os"

	"github.com/sayedpfe/tenantctl/internal/message"
	"github.com/sayedpfe/tenantctl/modules"
	"github.com/sayedpfe/tenantctl/modules/automation"
	"github.com/sayedpfe/tenantctl/modules/entra"
	"github.com/sayedpfe/tenantctl/modules/intune"
	"github.com/sayedpfe/tenantctl/modules/sharepoint"
	"github.com/sayedpfe/tenantctl/pkg/types"
	"github.com/spf13/cobra"
)

func init() {
	// Entra role management
	RegisterModule(entraRoleCmd, entra.RoleListMetadata, entra.RoleListOptions, noCommon, entra.NewRoleList)
	RegisterModule(entraRoleCmd, entra.RoleCloneMetadata, entra.RoleCloneOptions, noCommon, entra.NewRoleClone)

	// SharePoint sites
	RegisterModule(sharepointCmd, sharepoint.ExportSiteMetadata, sharepoint.ExportSiteOptions, noCommon, sharepoint.NewExportSite)
	RegisterModule(sharepointCmd, sharepoint.DeploySiteMetadata, sharepoint.DeploySiteOptions, noCommon, sharepoint.NewDeploySite)
	RegisterModule(sharepointCmd, sharepoint.ConditionalAccessMetadata, sharepoint.ConditionalAccessOptions, noCommon, sharepoint.NewConditionalAccess)
	RegisterModule(sharepointCmd, sharepoint.RequestListMetadata, sharepoint.RequestListOptions, noCommon, sharepoint.NewRequestList)

	// Intune enrollment
	RegisterModule(intuneCmd, intune.ImportDevicesMetadata, intune.ImportDevicesOptions, noCommon, intune.NewImportDevices)

	// Automation account
	RegisterModule(automationCmd, automation.DeployMetadata, automation.DeployOptions, noCommon, automation.NewDeploy)
	RegisterModule(automationCmd, automation.TriggerMetadata, automation.TriggerOptions, noCommon, automation.NewTrigger)
}

var noCommon = []*types.Option{}

func RegisterModule(cmd *cobra.Command, metadata modules.Metadata, required []*types.Option, common []*types.Option, factoryFn func(options []*types.Option, run modules.Run) (modules.Module, error)) {
	c := &cobra.Command{
		Use:   metadata.Id,
		Short: metadata.Description,
		Run: func(cmd *cobra.Command, args []string) {
			options := getOpts(cmd, required, common)
			run := modules.Run{Data: make(chan types.Result)}
			m, err := factoryFn(options, run)
			if err != nil {
				message.Critical("%v", err)
				os.Exit(1)
			}
			runModule(m, metadata, options, run)
		},
	}

	options2Flag(required, common, c)
	cmd.AddCommand(c)
}
