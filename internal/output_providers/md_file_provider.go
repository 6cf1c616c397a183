package outputproviders

import (
	"log/slog"
	"os"
	"path/filepath"

	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

type MarkdownFileProvider struct {
	types.OutputProvider
	OutputPath string
}

func NewMarkdownFileProvider(opts []*types.Option) types.OutputProvider {
	return &MarkdownFileProvider{
		OutputPath: types.GetOptionByName(o.OutputOpt.Name, opts).Value,
	}
}

func (fp *MarkdownFileProvider) Write(result types.Result) error {
	// Only MarkdownTable results belong to this provider.
	table, ok := result.Data.(types.MarkdownTable)
	if !ok {
		slog.Debug("Markdown provider is skipping non-table output")
		return nil
	}

	var filename string
	if result.Filename == "" {
		filename = fp.DefaultFileName(result.Module)
	} else {
		filename = result.Filename
	}
	fullpath := GetFullPath(filename, fp.OutputPath)

	if err := EnsureDir(filepath.Dir(fullpath)); err != nil {
		return err
	}

	file, err := os.OpenFile(fullpath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.WriteString(table.ToString() + "\n"); err != nil {
		return err
	}

	slog.Info("Markdown table written", "path", fullpath)
	return nil
}

func (fp *MarkdownFileProvider) DefaultFileName(prefix string) string {
	return DefaultFileName(prefix, "md")
}
