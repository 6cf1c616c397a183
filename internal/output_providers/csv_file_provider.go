package outputproviders

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sayedpfe/tenantctl/internal/message"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

type CsvFileProvider struct {
	types.OutputProvider
	OutputPath string
}

func NewCsvFileProvider(opts []*types.Option) types.OutputProvider {
	return &CsvFileProvider{
		OutputPath: types.GetOptionByName(o.OutputOpt.Name, opts).Value,
	}
}

func (fp *CsvFileProvider) Write(result types.Result) error {
	rows, ok := result.Data.(types.CsvRows)
	if !ok {
		slog.Debug("CSV provider is skipping non-tabular output")
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

	file, err := os.Create(fullpath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(rows.Headers); err != nil {
		return err
	}
	for _, row := range rows.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	message.Success("Output written to %s", fullpath)

	return nil
}

func (fp *CsvFileProvider) DefaultFileName(prefix string) string {
	return DefaultFileName(prefix, "csv")
}
