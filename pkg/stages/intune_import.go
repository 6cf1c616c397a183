package stages

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/sayedpfe/tenantctl/internal/helpers"
	"github.com/sayedpfe/tenantctl/internal/message"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

// ParseDeviceCsvStage reads a device identity CSV and emits validated
// batches. Every record is validated before this stage emits anything, so a
// bad row aborts the import before the first network call.
func ParseDeviceCsvStage(ctx context.Context, opts []*types.Option, in <-chan string) <-chan []types.DeviceIdentityRecord {
	out := make(chan []types.DeviceIdentityRecord)

	go func() {
		defer close(out)

		batchSize, _ := strconv.Atoi(o.GetOptionByName(o.BatchSizeOpt.Name, opts).Value)
		if batchSize <= 0 {
			batchSize = 100
		}

		for path := range in {
			records, err := ReadDeviceIdentityCsv(path)
			if err != nil {
				message.Error("Device CSV rejected: %v", err)
				continue
			}

			message.Info("Parsed %d device identities from %s", len(records), path)

			for start := 0; start < len(records); start += batchSize {
				end := start + batchSize
				if end > len(records) {
					end = len(records)
				}
				out <- records[start:end]
			}
		}
	}()

	return out
}

// ReadDeviceIdentityCsv parses and validates identifier,type,description
// rows. A header row is skipped when detected. The whole file is rejected on
// the first invalid record.
func ReadDeviceIdentityCsv(path string) ([]types.DeviceIdentityRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var records []types.DeviceIdentityRecord
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		if len(row) < 2 {
			return nil, fmt.Errorf("line %d: expected identifier,type[,description]", line)
		}

		identifier := strings.TrimSpace(row[0])
		identityType := strings.TrimSpace(row[1])

		if line == 1 && strings.EqualFold(identifier, "identifier") {
			continue
		}

		record := types.DeviceIdentityRecord{
			ImportedDeviceIdentifier:   identifier,
			ImportedDeviceIdentityType: identityType,
		}
		if len(row) > 2 {
			record.Description = strings.TrimSpace(row[2])
		}

		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s contains no device identities", path)
	}

	return records, nil
}

type importDeviceIdentityList struct {
	ImportedDeviceIdentities          []types.DeviceIdentityRecord `json:"importedDeviceIdentities"`
	OverwriteImportedDeviceIdentities bool                         `json:"overwriteImportedDeviceIdentities"`
}

type importDeviceIdentityResponse struct {
	Value []struct {
		ImportedDeviceIdentifier string `json:"importedDeviceIdentifier"`
		Status                   bool   `json:"status"`
	} `json:"value"`
}

// ImportDevicesStage submits each validated batch to the Graph bulk import
// endpoint and emits the per-record outcomes.
func ImportDevicesStage(ctx context.Context, opts []*types.Option, in <-chan []types.DeviceIdentityRecord) <-chan []types.DeviceImportStatus {
	out := make(chan []types.DeviceImportStatus)

	go func() {
		defer close(out)

		cred, err := helpers.GetCredential(opts)
		if err != nil {
			slog.Error("Failed to get credentials", "error", err)
			return
		}

		// importedDeviceIdentities only exists on the beta surface.
		client := helpers.NewGraphRestClient(cred, helpers.GraphBetaBaseURL)

		overwrite, _ := strconv.ParseBool(o.GetOptionByName(o.OverwriteImportedOpt.Name, opts).Value)

		for batch := range in {
			payload := importDeviceIdentityList{
				ImportedDeviceIdentities:          batch,
				OverwriteImportedDeviceIdentities: overwrite,
			}

			var response importDeviceIdentityResponse
			err := client.Do(ctx, http.MethodPost,
				"/deviceManagement/importedDeviceIdentities/importDeviceIdentityList",
				payload, &response)
			if err != nil {
				helpers.HandleGraphError(err, "importDeviceIdentityList")
				statuses := make([]types.DeviceImportStatus, 0, len(batch))
				for _, record := range batch {
					statuses = append(statuses, types.DeviceImportStatus{
						Identifier: record.ImportedDeviceIdentifier,
						Status:     "failed",
						Detail:     err.Error(),
					})
				}
				out <- statuses
				continue
			}

			statuses := make([]types.DeviceImportStatus, 0, len(response.Value))
			for _, entry := range response.Value {
				status := "imported"
				if !entry.Status {
					status = "skipped"
				}
				statuses = append(statuses, types.DeviceImportStatus{
					Identifier: entry.ImportedDeviceIdentifier,
					Status:     status,
				})
			}
			out <- statuses
		}
	}()

	return out
}

// FormatImportOutputStage renders import outcomes as a summary table plus a
// JSON report.
func FormatImportOutputStage(ctx context.Context, opts []*types.Option, in <-chan []types.DeviceImportStatus) <-chan types.Result {
	out := make(chan types.Result)

	go func() {
		defer close(out)

		var all []types.DeviceImportStatus
		for statuses := range in {
			all = append(all, statuses...)
		}
		if len(all) == 0 {
			return
		}

		imported := 0
		table := types.MarkdownTable{
			TableHeading: "Intune device identity import",
			Headers:      []string{"Identifier", "Status"},
			Rows:         make([][]string, 0, len(all)),
		}
		for _, s := range all {
			if s.Status == "imported" {
				imported++
			}
			table.Rows = append(table.Rows, []string{s.Identifier, s.Status})
		}

		message.Success("Imported %d of %d device identities", imported, len(all))

		out <- types.NewResult("intune", "import-devices", all,
			types.WithFilename("device-import-report.json"))
		out <- types.NewResult("intune", "import-devices", table,
			types.WithFilename("device-import-report.md"))
	}()

	return out
}
