package jq

import (
	"bytes"
	"os"
	"testing"
)

func TestPerformJqQuery(t *testing.T) {
	jsonContent := `{"siteUrl": "https://contoso.sharepoint.com/sites/hr", "lists": 4}`

	testCases := []struct {
		name      string
		jqQuery   string
		expected  []byte
		expectErr bool
	}{
		{
			name:     "select string field",
			jqQuery:  ".siteUrl",
			expected: []byte(`"https://contoso.sharepoint.com/sites/hr"`),
		},
		{
			name:     "select numeric field",
			jqQuery:  ".lists",
			expected: []byte(`4`),
		},
		{
			name:      "invalid query",
			jqQuery:   "lists",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := PerformJqQuery([]byte(jsonContent), tc.jqQuery)
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected error for query %q", tc.jqQuery)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(result, tc.expected) {
				t.Errorf("expected %s, got %s", tc.expected, result)
			}
		})
	}
}

func TestPerformJqQueryOnFile(t *testing.T) {
	jsonContent := `{"accountName": "spo-conditional-access"}`
	tempFile, err := os.CreateTemp("", "automation-config-*.json")
	if err != nil {
		t.Fatalf("Error creating temporary file: %v", err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()
	tempFile.Write([]byte(jsonContent))

	result, err := PerformJqQueryOnFile(tempFile.Name(), ".accountName")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != `"spo-conditional-access"` {
		t.Errorf("unexpected result: %s", result)
	}
}
