package outputproviders

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sayedpfe/tenantctl/internal/jq"
	"github.com/sayedpfe/tenantctl/internal/message"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

type JsonFileProvider struct {
	types.OutputProvider
	OutputPath string
	JqFilter   string
}

func NewJsonFileProvider(opts []*types.Option) types.OutputProvider {
	provider := &JsonFileProvider{
		OutputPath: types.GetOptionByName(o.OutputOpt.Name, opts).Value,
	}
	if filter := types.GetOptionByName(o.JqFilterOpt.Name, opts); filter != nil {
		provider.JqFilter = filter.Value
	}
	return provider
}

func (fp *JsonFileProvider) Write(result types.Result) error {
	switch result.Data.(type) {
	case types.MarkdownTable, types.CsvRows:
		// Tabular results belong to the markdown/CSV providers.
		slog.Debug("JSON provider is skipping tabular output")
		return nil
	case string:
		// Plain text artifacts belong to the plain file provider.
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

	data, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		return err
	}

	if fp.JqFilter != "" {
		filtered, err := jq.PerformJqQuery(data, fp.JqFilter)
		if err != nil {
			return err
		}
		data = filtered
	}

	file, err := os.Create(fullpath)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return err
	}

	message.Success("Output written to %s", fullpath)

	return nil
}

func (fp *JsonFileProvider) DefaultFileName(prefix string) string {
	return DefaultFileName(prefix, "json")
}
