package stages

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sayedpfe/tenantctl/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportColumns(t *testing.T) {
	fields := []types.FieldDefinition{
		{InternalName: "Zeta"},
		{InternalName: "Author", ReadOnly: true},
		{InternalName: "Alpha"},
		{InternalName: "_Hidden", Hidden: true},
		{InternalName: "Title"},
	}

	columns := exportColumns(fields)

	assert.Equal(t, []string{"ID", "Title", "Alpha", "Zeta"}, columns)
}

func TestStringifyCell(t *testing.T) {
	assert.Equal(t, "", stringifyCell(nil))
	assert.Equal(t, "hello", stringifyCell("hello"))
	assert.Equal(t, "42", stringifyCell(float64(42)))
	assert.Equal(t, "3.5", stringifyCell(float64(3.5)))
	assert.Equal(t, "true", stringifyCell(true))
	assert.Equal(t, `["a","b"]`, stringifyCell([]interface{}{"a", "b"}))
}

func TestListItemsFilename(t *testing.T) {
	assert.Equal(t, "Access-Requests-items.csv", ListItemsFilename("Access Requests"))
	assert.Equal(t, "Tasks-items.csv", ListItemsFilename("Tasks?!"))
	assert.Equal(t, "list-items.csv", ListItemsFilename("!!!"))
}

func TestFieldSchemaXML(t *testing.T) {
	schema := FieldSchemaXML(types.FieldDefinition{
		InternalName: "Status",
		Title:        "Status",
		TypeKind:     6,
		Required:     true,
		Choices:      []string{"Pending", "Approved"},
	})

	assert.Contains(t, schema, `Type="Choice"`)
	assert.Contains(t, schema, `Name="Status"`)
	assert.Contains(t, schema, `Required="TRUE"`)
	assert.Contains(t, schema, "<CHOICE>Pending</CHOICE>")
	assert.Contains(t, schema, "<CHOICE>Approved</CHOICE>")
}

func TestFieldSchemaXMLEscapesValues(t *testing.T) {
	schema := FieldSchemaXML(types.FieldDefinition{
		InternalName: "Notes",
		Title:        "R&D <Notes>",
		TypeKind:     3,
	})

	assert.Contains(t, schema, "R&amp;D &lt;Notes&gt;")
	assert.Contains(t, schema, `Type="Note"`)
	assert.Contains(t, schema, `Required="FALSE"`)
}

func TestFieldSchemaXMLUnknownTypeFallsBackToText(t *testing.T) {
	schema := FieldSchemaXML(types.FieldDefinition{InternalName: "X", Title: "X", TypeKind: 99})
	assert.Contains(t, schema, `Type="Text"`)
}

func TestDeployableField(t *testing.T) {
	assert.True(t, deployableField(types.FieldDefinition{InternalName: "Requester"}))
	assert.False(t, deployableField(types.FieldDefinition{InternalName: "Title"}))
	assert.False(t, deployableField(types.FieldDefinition{InternalName: "ID"}))
	assert.False(t, deployableField(types.FieldDefinition{InternalName: "Editor", ReadOnly: true}))
	assert.False(t, deployableField(types.FieldDefinition{InternalName: "_Hidden", Hidden: true}))
}

func TestReadSiteStructure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "SiteStructure.json")

	manifest := types.SiteStructure{
		SiteURL: "https://contoso.sharepoint.com/sites/hr",
		Title:   "HR",
		Lists: []types.ListDefinition{
			{Title: "Access Requests", BaseTemplate: 100},
		},
	}
	raw, err := json.Marshal(manifest)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0644))

	got, err := ReadSiteStructure(path)
	require.NoError(t, err)
	assert.Equal(t, manifest.SiteURL, got.SiteURL)
	assert.Len(t, got.Lists, 1)
}

// TestSiteManifestRoundTrip writes a manifest and items CSV shaped exactly
// like the export side produces them, then runs them back through the deploy
// side parsers and asserts nothing is lost along the way.
func TestSiteManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	fields := []types.FieldDefinition{
		{InternalName: "Title", Title: "Title", TypeKind: 2},
		{InternalName: "Requester", Title: "Requester", TypeKind: 2, Required: true},
		{InternalName: "Status", Title: "Status", TypeKind: 6, Required: true,
			Choices: []string{"Pending", "Approved", "Rejected"}},
		{InternalName: "Editor", Title: "Modified By", TypeKind: 20, ReadOnly: true},
	}
	columns := exportColumns(fields)
	require.Equal(t, []string{"ID", "Title", "Requester", "Status"}, columns)

	rows := [][]string{
		{stringifyCell(float64(1)), "Parking pass", "amy@contoso.com", "Pending"},
		{stringifyCell(float64(2)), "Badge renewal", "bob@contoso.com", "Approved"},
	}

	manifest := types.SiteStructure{
		SiteURL: "https://contoso.sharepoint.com/sites/hr",
		Title:   "HR",
		Lists: []types.ListDefinition{
			{
				Title:        "Access Requests",
				BaseTemplate: 100,
				ItemCount:    len(rows),
				Fields:       fields,
				ItemsFile:    ListItemsFilename("Access Requests"),
			},
		},
	}

	raw, err := json.Marshal(manifest)
	require.NoError(t, err)
	manifestPath := filepath.Join(dir, "SiteStructure.json")
	require.NoError(t, os.WriteFile(manifestPath, raw, 0644))

	csvFile, err := os.Create(filepath.Join(dir, manifest.Lists[0].ItemsFile))
	require.NoError(t, err)
	writer := csv.NewWriter(csvFile)
	require.NoError(t, writer.Write(columns))
	require.NoError(t, writer.WriteAll(rows))
	writer.Flush()
	require.NoError(t, csvFile.Close())

	got, err := ReadSiteStructure(manifestPath)
	require.NoError(t, err)
	assert.Equal(t, manifest.SiteURL, got.SiteURL)
	require.Len(t, got.Lists, 1)
	list := got.Lists[0]

	// The Choice column must come back with its options so the field schema
	// carries them onto the target list.
	var status *types.FieldDefinition
	for i := range list.Fields {
		if list.Fields[i].InternalName == "Status" {
			status = &list.Fields[i]
		}
	}
	require.NotNil(t, status)
	assert.Equal(t, []string{"Pending", "Approved", "Rejected"}, status.Choices)
	schema := FieldSchemaXML(*status)
	assert.Contains(t, schema, "<CHOICES><CHOICE>Pending</CHOICE><CHOICE>Approved</CHOICE><CHOICE>Rejected</CHOICE></CHOICES>")

	payloads, err := ReadItemPayloads(filepath.Join(dir, list.ItemsFile))
	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, map[string]interface{}{
		"Title":     "Parking pass",
		"Requester": "amy@contoso.com",
		"Status":    "Pending",
	}, payloads[0])
	assert.NotContains(t, payloads[1], "ID")
	assert.Equal(t, "Approved", payloads[1]["Status"])
}

func TestReadItemPayloadsSkipsEmptyCells(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Tasks-items.csv")
	require.NoError(t, os.WriteFile(path, []byte("ID,Title,Owner\n1,Standup,\n2,,\n"), 0644))

	payloads, err := ReadItemPayloads(path)
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	assert.Equal(t, map[string]interface{}{"Title": "Standup"}, payloads[0])
}

func TestReadSiteStructureRejectsBadManifests(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadSiteStructure(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"siteUrl":"https://contoso.sharepoint.com","lists":[]}`), 0644))
	_, err = ReadSiteStructure(empty)
	assert.Error(t, err)

	noURL := filepath.Join(dir, "nourl.json")
	require.NoError(t, os.WriteFile(noURL, []byte(`{"lists":[{"title":"X"}]}`), 0644))
	_, err = ReadSiteStructure(noURL)
	assert.Error(t, err)
}
