package helpers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sayedpfe/tenantctl/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerWebhook(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"JobIds":["0b7b7a64-3a6f-4a1f-9a55-7f9b2b9b0f11"]}`))
	}))
	defer server.Close()

	jobIDs, err := TriggerWebhook(context.Background(), server.URL, map[string]string{
		"siteUrl": "https://contoso.sharepoint.com/sites/hr",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"0b7b7a64-3a6f-4a1f-9a55-7f9b2b9b0f11"}, jobIDs)
	assert.Equal(t, "https://contoso.sharepoint.com/sites/hr", gotBody["siteUrl"])
}

func TestTriggerWebhookRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "webhook expired", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := TriggerWebhook(context.Background(), server.URL, map[string]string{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestTriggerWebhookRejectsEmptyJobList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"JobIds":[]}`))
	}))
	defer server.Close()

	_, err := TriggerWebhook(context.Background(), server.URL, map[string]string{})

	assert.Error(t, err)
}

func TestReadAutomationConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "automation-config.json")

	cfg := types.AutomationConfig{
		SubscriptionID: "00000000-0000-0000-0000-000000000000",
		ResourceGroup:  "rg-tenant-automation",
		AccountName:    "aa-spo-site-policy",
		WebhookURL:     "https://webhook.example/token",
	}
	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0600))

	got, err := ReadAutomationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.WebhookURL, got.WebhookURL)
	assert.Equal(t, cfg.ResourceGroup, got.ResourceGroup)
}

func TestReadAutomationConfigRequiresWebhookURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "automation-config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"resourceGroup":"rg"}`), 0600))

	_, err := ReadAutomationConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "webhook URL")
}

func TestReadAutomationConfigMissingFile(t *testing.T) {
	_, err := ReadAutomationConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
