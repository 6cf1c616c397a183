package stages

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/koltyakov/gosip/api"
	"github.com/sayedpfe/tenantctl/internal/helpers"
	"github.com/sayedpfe/tenantctl/internal/message"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

// SiteDeployment is the outcome of replaying one manifest against one site.
type SiteDeployment struct {
	SiteURL  string
	Manifest types.SiteStructure
	Results  []types.ListDeployResult
}

// DeploySiteStructureStage replays a SiteStructure manifest against each
// incoming target site: lists are created with their fields, then item rows
// from the per-list CSVs are inserted.
func DeploySiteStructureStage(ctx context.Context, opts []*types.Option, in <-chan string) <-chan *SiteDeployment {
	out := make(chan *SiteDeployment)

	go func() {
		defer close(out)

		manifestPath := o.GetOptionByName(o.ManifestOpt.Name, opts).Value
		manifest, err := ReadSiteStructure(manifestPath)
		if err != nil {
			slog.Error("Failed to read manifest", "path", manifestPath, "error", err)
			return
		}

		for siteURL := range in {
			sp, _, err := helpers.NewSharePointClient(siteURL, opts)
			if err != nil {
				slog.Error("Failed to build SharePoint client", "site", siteURL, "error", err)
				continue
			}
			sp = sp.Conf(&api.RequestConfig{Context: ctx})

			deployment := &SiteDeployment{
				SiteURL:  siteURL,
				Manifest: *manifest,
			}

			for _, list := range manifest.Lists {
				result := deployList(sp, filepath.Dir(manifestPath), list)
				deployment.Results = append(deployment.Results, result)
			}

			out <- deployment
		}
	}()

	return out
}

// ReadSiteStructure loads and sanity-checks a SiteStructure.json manifest.
func ReadSiteStructure(path string) (*types.SiteStructure, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var manifest types.SiteStructure
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if manifest.SiteURL == "" {
		return nil, fmt.Errorf("manifest %s has no siteUrl", path)
	}
	if len(manifest.Lists) == 0 {
		return nil, fmt.Errorf("manifest %s declares no lists", path)
	}

	return &manifest, nil
}

func deployList(sp *api.SP, manifestDir string, list types.ListDefinition) types.ListDeployResult {
	result := types.ListDeployResult{Title: list.Title}

	_, err := sp.Web().Lists().Add(list.Title, map[string]interface{}{
		"BaseTemplate": list.BaseTemplate,
		"Description":  list.Description,
	})
	if err != nil {
		// The list may already exist on the target; fields and items are
		// still replayed into it.
		result.Detail = err.Error()
	} else {
		result.Created = true
	}

	target := sp.Web().Lists().GetByTitle(list.Title)

	for _, field := range list.Fields {
		if !deployableField(field) {
			continue
		}
		schema := FieldSchemaXML(field)
		if _, err := target.Fields().CreateFieldAsXML(schema, 0); err != nil {
			slog.Warn("Failed to add field", "list", list.Title, "field", field.InternalName, "error", err)
			continue
		}
		result.FieldsAdded++
	}

	if list.ItemsFile != "" {
		added, err := deployListItems(target, filepath.Join(manifestDir, list.ItemsFile))
		if err != nil {
			slog.Warn("Failed to replay items", "list", list.Title, "error", err)
		}
		result.ItemsAdded = added
	}

	message.Info("List %q: created=%t fields=%d items=%d",
		list.Title, result.Created, result.FieldsAdded, result.ItemsAdded)

	return result
}

// deployableField filters to the custom writable columns. Hidden and
// read-only fields are provisioned by the list template itself, and Title
// exists on every list.
func deployableField(field types.FieldDefinition) bool {
	if field.Hidden || field.ReadOnly {
		return false
	}
	switch field.InternalName {
	case "ID", "Title":
		return false
	}
	return true
}

// fieldTypeNames maps SP.FieldType kinds onto the schema Type attribute.
var fieldTypeNames = map[int]string{
	2:  "Text",
	3:  "Note",
	4:  "DateTime",
	6:  "Choice",
	8:  "Boolean",
	9:  "Number",
	10: "Currency",
	11: "URL",
	20: "User",
}

// FieldSchemaXML renders the CAML schema used to provision one field.
func FieldSchemaXML(field types.FieldDefinition) string {
	typeName, ok := fieldTypeNames[field.TypeKind]
	if !ok {
		typeName = "Text"
	}

	schema := fmt.Sprintf(
		`<Field Type="%s" Name="%s" StaticName="%s" DisplayName="%s" Required="%s">`,
		typeName,
		xmlEscape(field.InternalName),
		xmlEscape(field.InternalName),
		xmlEscape(field.Title),
		strings.ToUpper(strconv.FormatBool(field.Required)),
	)
	if len(field.Choices) > 0 {
		schema += "<CHOICES>"
		for _, choice := range field.Choices {
			schema += "<CHOICE>" + xmlEscape(choice) + "</CHOICE>"
		}
		schema += "</CHOICES>"
	}
	schema += "</Field>"

	return schema
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func deployListItems(list *api.List, csvPath string) (int, error) {
	payloads, err := ReadItemPayloads(csvPath)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, payload := range payloads {
		body, err := json.Marshal(payload)
		if err != nil {
			continue
		}
		if _, err := list.Items().Add(body); err != nil {
			slog.Warn("Failed to add item", "csv", csvPath, "error", err)
			continue
		}
		added++
	}

	return added, nil
}

// ReadItemPayloads parses a per-list CSV dump into item payloads keyed by
// column internal name. The ID column and empty cells are dropped since the
// target list assigns its own item IDs and defaults.
func ReadItemPayloads(csvPath string) ([]map[string]interface{}, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", csvPath, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", csvPath, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	headers := rows[0]
	var payloads []map[string]interface{}
	for _, row := range rows[1:] {
		payload := map[string]interface{}{}
		for i, header := range headers {
			if header == "ID" || i >= len(row) || row[i] == "" {
				continue
			}
			payload[header] = row[i]
		}
		if len(payload) == 0 {
			continue
		}
		payloads = append(payloads, payload)
	}

	return payloads, nil
}

// FormatSiteDeployStage renders deployment outcomes as a JSON report plus a
// console summary table.
func FormatSiteDeployStage(ctx context.Context, opts []*types.Option, in <-chan *SiteDeployment) <-chan types.Result {
	out := make(chan types.Result)

	go func() {
		defer close(out)

		for deployment := range in {
			out <- types.NewResult("sharepoint", "deploy",
				deployment.Results,
				types.WithFilename("site-deploy-report.json"))

			table := types.MarkdownTable{
				TableHeading: fmt.Sprintf("Site deploy: %s", deployment.SiteURL),
				Headers:      []string{"List", "Created", "Fields", "Items"},
				Rows:         make([][]string, 0, len(deployment.Results)),
			}
			for _, r := range deployment.Results {
				table.Rows = append(table.Rows, []string{
					r.Title,
					strconv.FormatBool(r.Created),
					strconv.Itoa(r.FieldsAdded),
					strconv.Itoa(r.ItemsAdded),
				})
			}
			out <- types.NewResult("sharepoint", "deploy", table,
				types.WithFilename("site-deploy-summary.md"))
		}
	}()

	return out
}
