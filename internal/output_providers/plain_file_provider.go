package outputproviders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sayedpfe/tenantctl/internal/message"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

// PlainFileProvider writes string results verbatim, e.g. the webhook URL
// artifact the automation deploy module produces.
type PlainFileProvider struct {
	types.OutputProvider
	OutputPath string
}

func NewPlainFileProvider(opts []*types.Option) types.OutputProvider {
	return &PlainFileProvider{
		OutputPath: types.GetOptionByName(o.OutputOpt.Name, opts).Value,
	}
}

func (fp *PlainFileProvider) Write(result types.Result) error {
	text, ok := result.Data.(string)
	if !ok {
		return nil
	}

	if result.Filename == "" {
		return fmt.Errorf("plain file output requires an explicit filename")
	}
	fullpath := GetFullPath(result.Filename, fp.OutputPath)

	if err := EnsureDir(filepath.Dir(fullpath)); err != nil {
		return err
	}

	if err := os.WriteFile(fullpath, []byte(text+"\n"), 0600); err != nil {
		return err
	}

	message.Success("Output written to %s", fullpath)
	return nil
}
