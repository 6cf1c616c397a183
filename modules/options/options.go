package options

import (
	"github.com/sayedpfe/tenantctl/pkg/types"
)

func GetOptionByName(name string, options []*types.Option) *types.Option {
	return types.GetOptionByName(name, options)
}
