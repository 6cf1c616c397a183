package stages

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/koltyakov/gosip/api"
	"github.com/sayedpfe/tenantctl/internal/helpers"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

// SiteExport carries everything the export walk produced for one site.
type SiteExport struct {
	Manifest types.SiteStructure
	Rows     []types.ListRows
}

const (
	webSelectFields   = "Id,Title,Description,Url,WebTemplate"
	listSelectFields  = "Id,Title,Description,Hidden,ItemCount,BaseTemplate"
	fieldSelectFields = "InternalName,Title,FieldTypeKind,Required,Hidden,ReadOnlyField,Choices"
)

// ExportSiteStructureStage walks a site's web, lists, fields and items and
// builds the manifest plus per-list row dumps. Each incoming site URL yields
// at most one SiteExport.
func ExportSiteStructureStage(ctx context.Context, opts []*types.Option, in <-chan string) <-chan *SiteExport {
	out := make(chan *SiteExport)

	go func() {
		defer close(out)

		includeHidden, _ := strconv.ParseBool(o.GetOptionByName(o.IncludeHiddenOpt.Name, opts).Value)
		maxItems := 0
		if opt := o.GetOptionByName(o.MaxItemsOpt.Name, opts); opt != nil && opt.Value != "" {
			maxItems, _ = strconv.Atoi(opt.Value)
		}

		for siteURL := range in {
			sp, _, err := helpers.NewSharePointClient(siteURL, opts)
			if err != nil {
				slog.Error("Failed to build SharePoint client", "site", siteURL, "error", err)
				continue
			}
			sp = sp.Conf(&api.RequestConfig{Context: ctx})

			export, err := exportSite(sp, siteURL, includeHidden, maxItems)
			if err != nil {
				slog.Error("Site export failed", "site", siteURL, "error", err)
				continue
			}

			out <- export
		}
	}()

	return out
}

func exportSite(sp *api.SP, siteURL string, includeHidden bool, maxItems int) (*SiteExport, error) {
	webRes, err := sp.Web().Select(webSelectFields).Get()
	if err != nil {
		return nil, fmt.Errorf("get web: %w", err)
	}

	var webData struct {
		Id          string
		Title       string
		Description string
		Url         string
		WebTemplate string
	}
	if err := json.Unmarshal(webRes.Normalized(), &webData); err != nil {
		return nil, fmt.Errorf("decode web: %w", err)
	}

	export := &SiteExport{
		Manifest: types.SiteStructure{
			SiteURL:     siteURL,
			WebID:       webData.Id,
			Title:       webData.Title,
			Description: webData.Description,
			Template:    webData.WebTemplate,
			ExportedAt:  time.Now().UTC().Format(time.RFC3339),
		},
	}

	listsRes, err := sp.Web().Lists().Select(listSelectFields).Get()
	if err != nil {
		return nil, fmt.Errorf("get lists: %w", err)
	}

	var listsData []struct {
		Id           string
		Title        string
		Description  string
		Hidden       bool
		ItemCount    int
		BaseTemplate int
	}
	if err := json.Unmarshal(listsRes.Normalized(), &listsData); err != nil {
		return nil, fmt.Errorf("decode lists: %w", err)
	}

	for _, l := range listsData {
		if l.Hidden && !includeHidden {
			continue
		}

		def := types.ListDefinition{
			ID:           l.Id,
			Title:        l.Title,
			Description:  l.Description,
			BaseTemplate: l.BaseTemplate,
			ItemCount:    l.ItemCount,
			Hidden:       l.Hidden,
		}

		fields, err := exportListFields(sp, l.Id)
		if err != nil {
			slog.Warn("Skipping fields for list", "list", l.Title, "error", err)
		}
		def.Fields = fields

		if l.ItemCount > 0 {
			rows, err := exportListItems(sp, l.Id, l.Title, fields, maxItems)
			if err != nil {
				slog.Warn("Skipping items for list", "list", l.Title, "error", err)
			} else if len(rows.Rows) > 0 {
				def.ItemsFile = ListItemsFilename(l.Title)
				export.Rows = append(export.Rows, rows)
			}
		}

		export.Manifest.Lists = append(export.Manifest.Lists, def)
	}

	return export, nil
}

func exportListFields(sp *api.SP, listID string) ([]types.FieldDefinition, error) {
	res, err := sp.Web().Lists().GetByID(listID).Fields().Select(fieldSelectFields).Get()
	if err != nil {
		return nil, fmt.Errorf("get fields: %w", err)
	}

	var fieldsData []struct {
		InternalName  string
		Title         string
		FieldTypeKind int
		Required      bool
		Hidden        bool
		ReadOnlyField bool
		Choices       []string
	}
	if err := json.Unmarshal(res.Normalized(), &fieldsData); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}

	fields := make([]types.FieldDefinition, 0, len(fieldsData))
	for _, f := range fieldsData {
		fields = append(fields, types.FieldDefinition{
			InternalName: f.InternalName,
			Title:        f.Title,
			TypeKind:     f.FieldTypeKind,
			Required:     f.Required,
			Hidden:       f.Hidden,
			ReadOnly:     f.ReadOnlyField,
			Choices:      f.Choices,
		})
	}

	return fields, nil
}

func exportListItems(sp *api.SP, listID, listTitle string, fields []types.FieldDefinition, maxItems int) (types.ListRows, error) {
	columns := exportColumns(fields)

	rows := types.ListRows{
		ListTitle: listTitle,
		Columns:   columns,
	}

	pageSize := 500
	if maxItems > 0 && maxItems < pageSize {
		pageSize = maxItems
	}

	page, err := sp.Web().Lists().GetByID(listID).Items().
		Select(strings.Join(columns, ",")).
		Top(pageSize).
		GetPaged()
	if err != nil {
		return rows, fmt.Errorf("get items: %w", err)
	}

	for {
		for _, item := range page.Items.Data() {
			var values map[string]interface{}
			if err := json.Unmarshal(item.Normalized(), &values); err != nil {
				continue
			}

			row := make([]string, len(columns))
			for i, col := range columns {
				row[i] = stringifyCell(values[col])
			}
			rows.Rows = append(rows.Rows, row)

			if maxItems > 0 && len(rows.Rows) >= maxItems {
				return rows, nil
			}
		}

		if !page.HasNextPage() {
			break
		}
		page, err = page.GetNextPage()
		if err != nil {
			return rows, fmt.Errorf("get next items page: %w", err)
		}
	}

	return rows, nil
}

// exportColumns picks the writable fields, always leading with ID and Title
// so the CSV stays human-scannable.
func exportColumns(fields []types.FieldDefinition) []string {
	seen := map[string]bool{"ID": true, "Title": true}
	columns := []string{"ID", "Title"}

	var rest []string
	for _, f := range fields {
		if f.Hidden || f.ReadOnly || seen[f.InternalName] {
			continue
		}
		seen[f.InternalName] = true
		rest = append(rest, f.InternalName)
	}
	sort.Strings(rest)

	return append(columns, rest...)
}

func stringifyCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

// ListItemsFilename is the per-list CSV name referenced from the manifest.
func ListItemsFilename(listTitle string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, listTitle)
	if sanitized == "" {
		sanitized = "list"
	}
	return sanitized + "-items.csv"
}

// FormatSiteExportStage turns a SiteExport into output results: the JSON
// manifest, one CSV per list and a console summary table.
func FormatSiteExportStage(ctx context.Context, opts []*types.Option, in <-chan *SiteExport) <-chan types.Result {
	out := make(chan types.Result)

	go func() {
		defer close(out)

		for export := range in {
			out <- types.NewResult("sharepoint", "export",
				export.Manifest,
				types.WithFilename("SiteStructure.json"))

			for _, rows := range export.Rows {
				out <- types.NewResult("sharepoint", "export",
					types.CsvRows{Headers: rows.Columns, Rows: rows.Rows},
					types.WithFilename(ListItemsFilename(rows.ListTitle)))
			}

			table := types.MarkdownTable{
				TableHeading: fmt.Sprintf("Site export: %s", export.Manifest.SiteURL),
				Headers:      []string{"List", "Template", "Items", "Fields"},
				Rows:         make([][]string, 0, len(export.Manifest.Lists)),
			}
			for _, l := range export.Manifest.Lists {
				table.Rows = append(table.Rows, []string{
					l.Title,
					strconv.Itoa(l.BaseTemplate),
					strconv.Itoa(l.ItemCount),
					strconv.Itoa(len(l.Fields)),
				})
			}
			out <- types.NewResult("sharepoint", "export", table,
				types.WithFilename("SiteStructure-summary.md"))
		}
	}()

	return out
}
