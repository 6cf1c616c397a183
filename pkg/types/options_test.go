package types

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOptionsRequired(t *testing.T) {
	declared := []*Option{
		{Name: "site-url", Required: true, Type: String},
	}

	err := ValidateOptions([]*Option{{Name: "site-url", Required: true, Value: ""}}, declared)
	assert.Error(t, err)

	err = ValidateOptions([]*Option{{Name: "site-url", Required: true, Value: "https://contoso.sharepoint.com"}}, declared)
	assert.NoError(t, err)

	// The option is missing entirely.
	err = ValidateOptions([]*Option{}, declared)
	assert.Error(t, err)
}

func TestValidateOptionsValueFormat(t *testing.T) {
	format := regexp.MustCompile(`^https://[a-zA-Z0-9-]+\.sharepoint\.com(/.*)?$`)
	declared := []*Option{{Name: "site-url", Type: String}}

	err := ValidateOptions([]*Option{
		{Name: "site-url", Value: "https://contoso.sharepoint.com/sites/hr", ValueFormat: format},
	}, declared)
	assert.NoError(t, err)

	err = ValidateOptions([]*Option{
		{Name: "site-url", Value: "https://contoso.example.com", ValueFormat: format},
	}, declared)
	assert.Error(t, err)
}

func TestValidateOptionsValueList(t *testing.T) {
	declared := []*Option{{Name: "strategy", Type: String}}

	err := ValidateOptions([]*Option{
		{Name: "strategy", Value: "rest", ValueList: []string{"graph", "rest", "automation"}},
	}, declared)
	assert.NoError(t, err)

	err = ValidateOptions([]*Option{
		{Name: "strategy", Value: "csom", ValueList: []string{"graph", "rest", "automation"}},
	}, declared)
	assert.Error(t, err)
}

func TestValidateOptionsSkipsEmptyOptionalValues(t *testing.T) {
	declared := []*Option{{Name: "tenant-id", Type: String}}

	err := ValidateOptions([]*Option{
		{Name: "tenant-id", Value: "", ValueFormat: regexp.MustCompile("^[0-9a-f-]{36}$")},
	}, declared)
	assert.NoError(t, err)
}

func TestOptionMutatorsCopy(t *testing.T) {
	original := Option{Name: "title", Required: true, Description: "original"}

	relaxed := SetRequired(original, false)
	assert.False(t, relaxed.Required)
	assert.True(t, original.Required)

	described := WithDescription(original, "replayed")
	assert.Equal(t, "replayed", described.Description)
	assert.Equal(t, "original", original.Description)

	filled := WithValue(original, "v")
	assert.Equal(t, "v", filled.Value)
	assert.Empty(t, original.Value)

	defaulted := SetDefaultValue(original, "fallback")
	assert.Equal(t, "fallback", defaulted.Default)
	assert.Equal(t, "fallback", defaulted.Value)

	preset := SetDefaultValue(Option{Name: "x", Value: "set"}, "fallback")
	assert.Equal(t, "set", preset.Value)
}

func TestMarkdownTableToString(t *testing.T) {
	table := MarkdownTable{
		TableHeading: "Site export",
		Headers:      []string{"List", "Items"},
		Rows: [][]string{
			{"Access Requests", "12"},
			{"Documents", "450"},
		},
	}

	out := table.ToString()

	assert.Contains(t, out, "# Site export")
	assert.Contains(t, out, "| List            | Items |")
	assert.Contains(t, out, "| Access Requests | 12    |")
	assert.Contains(t, out, "| Documents       | 450   |")
}

func TestMarkdownTableToStringNoHeaders(t *testing.T) {
	table := MarkdownTable{TableHeading: "Empty"}
	assert.Equal(t, "# Empty\n\n", table.ToString())
}
