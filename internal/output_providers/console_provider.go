package outputproviders

import (
	"fmt"

	"github.com/sayedpfe/tenantctl/pkg/types"
)

type ConsoleProvider struct {
	types.OutputProvider
}

func NewConsoleProvider(options []*types.Option) types.OutputProvider {
	return &ConsoleProvider{}
}

// Write writes the `data` field of the result to the console.
func (cp *ConsoleProvider) Write(result types.Result) error {
	if table, ok := result.Data.(types.MarkdownTable); ok {
		fmt.Println(table.ToString())
		return nil
	}
	fmt.Println(result.String())
	return nil
}
