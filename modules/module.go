package modules

import (
	"github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

type OpsecLevel string

const (
	Stealth  OpsecLevel = "stealth"
	Moderate OpsecLevel = "moderate"
	None     OpsecLevel = "none"
)

const (
	Entra      types.Platform = "entra"
	SharePoint types.Platform = "sharepoint"
	Intune     types.Platform = "intune"
	Automation types.Platform = "automation"
)

func GetPlatformFromString(platform string) types.Platform {
	switch platform {
	case "entra":
		return Entra
	case "sharepoint":
		return SharePoint
	case "intune":
		return Intune
	case "automation":
		return Automation
	default:
		return ""
	}
}

type Metadata struct {
	Id          string
	Name        string
	Description string
	Platform    types.Platform
	Authors     []string
	References  []string
	OpsecLevel  OpsecLevel
}

type Module interface {
	Invoke() error
	GetOutputProviders() []types.OutputProvider
}

type Run struct {
	Data chan types.Result
}

type BaseModule struct {
	Module
	Metadata
	Options         []*types.Option
	OutputProviders []types.OutputProvider
	Run             Run
}

func (m *BaseModule) Invoke() error {
	panic("not implemented")
}

func (m *BaseModule) GetOptionByName(name string) *types.Option {
	return options.GetOptionByName(name, m.Options)
}

func (m *BaseModule) AddOption(option types.Option) {
	m.Options = append(m.Options, &option)
}

func (m *BaseModule) MakeResult(data interface{}, opts ...types.ResultOption) types.Result {
	return types.NewResult(m.Platform, m.Id, data, opts...)
}

func (m *BaseModule) GetOutputProviders() []types.OutputProvider {
	return m.OutputProviders
}

func RenderOutputProviders(providers []func(options []*types.Option) types.OutputProvider, opts []*types.Option) []types.OutputProvider {
	op := []types.OutputProvider{}
	for _, p := range providers {
		op = append(op, p(opts))
	}

	return op
}
