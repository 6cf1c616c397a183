package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/automation/armautomation"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

// ReadAutomationConfig loads the automation-config.json written by the deploy
// module.
func ReadAutomationConfig(path string) (*types.AutomationConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read automation config %s: %w", path, err)
	}

	var cfg types.AutomationConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse automation config %s: %w", path, err)
	}

	if cfg.WebhookURL == "" {
		return nil, fmt.Errorf("automation config %s has no webhook URL, run the deploy module first", path)
	}

	return &cfg, nil
}

// TriggerWebhook posts a payload to an automation webhook and returns the
// started job IDs. Webhook URLs are bearer tokens in themselves, no other
// auth is involved.
func TriggerWebhook(ctx context.Context, webhookURL string, payload interface{}) ([]string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, raw)
	}

	var response struct {
		JobIDs []string `json:"JobIds"`
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("failed to decode webhook response: %w", err)
	}
	if len(response.JobIDs) == 0 {
		return nil, fmt.Errorf("webhook accepted the request but returned no job IDs")
	}

	return response.JobIDs, nil
}

// jobStatusTerminal reports whether a job status will not change anymore.
func jobStatusTerminal(status armautomation.JobStatus) bool {
	switch status {
	case armautomation.JobStatusCompleted,
		armautomation.JobStatusFailed,
		armautomation.JobStatusStopped,
		armautomation.JobStatusSuspended:
		return true
	}
	return false
}

// PollJob polls an automation job until it reaches a terminal status or the
// timeout elapses. The returned report carries the last observed state either
// way.
func PollJob(ctx context.Context, jobs *armautomation.JobClient, resourceGroup, account, jobID string, interval, timeout time.Duration) (types.WebhookJobReport, error) {
	report := types.WebhookJobReport{JobID: jobID}

	deadline := time.Now().Add(timeout)
	for {
		job, err := jobs.Get(ctx, resourceGroup, account, jobID, nil)
		if err != nil {
			return report, fmt.Errorf("failed to get job %s: %w", jobID, err)
		}

		if props := job.Properties; props != nil {
			if props.Status != nil {
				report.Status = string(*props.Status)
			}
			if props.StartTime != nil {
				report.StartedAt = props.StartTime.UTC().Format(time.RFC3339)
			}
			if props.EndTime != nil {
				report.EndedAt = props.EndTime.UTC().Format(time.RFC3339)
			}
			if props.Exception != nil {
				report.Exception = *props.Exception
			}

			if props.Status != nil && jobStatusTerminal(*props.Status) {
				return report, nil
			}
		}

		if time.Now().After(deadline) {
			return report, fmt.Errorf("job %s did not finish within %s, last status %q", jobID, timeout, report.Status)
		}

		select {
		case <-ctx.Done():
			return report, ctx.Err()
		case <-time.After(interval):
		}
	}
}
