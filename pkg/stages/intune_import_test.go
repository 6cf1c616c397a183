package stages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sayedpfe/tenantctl/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCsv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "devices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadDeviceIdentityCsv(t *testing.T) {
	path := writeCsv(t, `identifier,type,description
356766086875364,imei,Warehouse scanner
C02XL0GZJGH5,serialNumber,Finance laptop
`)

	records, err := ReadDeviceIdentityCsv(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, types.DeviceIdentityRecord{
		ImportedDeviceIdentifier:   "356766086875364",
		ImportedDeviceIdentityType: types.IdentityTypeIMEI,
		Description:                "Warehouse scanner",
	}, records[0])
	assert.Equal(t, types.IdentityTypeSerial, records[1].ImportedDeviceIdentityType)
}

func TestReadDeviceIdentityCsvWithoutHeader(t *testing.T) {
	path := writeCsv(t, "356766086875364,imei,Scanner\n")

	records, err := ReadDeviceIdentityCsv(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "356766086875364", records[0].ImportedDeviceIdentifier)
}

func TestReadDeviceIdentityCsvRejectsWholeFileOnBadRecord(t *testing.T) {
	// One bad row poisons the whole file: nothing may reach the import
	// endpoint when any record is invalid.
	path := writeCsv(t, `identifier,type
356766086875364,imei
C02XL0GZJGH5,serial
`)

	records, err := ReadDeviceIdentityCsv(path)
	assert.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "line 3")
}

func TestReadDeviceIdentityCsvRejectsEmptyIdentifier(t *testing.T) {
	path := writeCsv(t, "  ,imei,Scanner\n")

	_, err := ReadDeviceIdentityCsv(path)
	assert.Error(t, err)
}

func TestReadDeviceIdentityCsvRejectsEmptyFile(t *testing.T) {
	path := writeCsv(t, "identifier,type,description\n")

	_, err := ReadDeviceIdentityCsv(path)
	assert.Error(t, err)
}

func TestReadDeviceIdentityCsvRejectsShortRows(t *testing.T) {
	path := writeCsv(t, "356766086875364\n")

	_, err := ReadDeviceIdentityCsv(path)
	assert.Error(t, err)
}

func TestDeviceIdentityRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  types.DeviceIdentityRecord
		wantErr bool
	}{
		{
			name:   "imei",
			record: types.DeviceIdentityRecord{ImportedDeviceIdentifier: "356766086875364", ImportedDeviceIdentityType: "imei"},
		},
		{
			name:   "serial",
			record: types.DeviceIdentityRecord{ImportedDeviceIdentifier: "C02XL0GZJGH5", ImportedDeviceIdentityType: "serialNumber"},
		},
		{
			name:   "manufacturer model serial",
			record: types.DeviceIdentityRecord{ImportedDeviceIdentifier: "Contoso,Slate,12345", ImportedDeviceIdentityType: "manufacturerModelSerial"},
		},
		{
			name:    "unknown type",
			record:  types.DeviceIdentityRecord{ImportedDeviceIdentifier: "x", ImportedDeviceIdentityType: "imei2"},
			wantErr: true,
		},
		{
			name:    "case sensitive type",
			record:  types.DeviceIdentityRecord{ImportedDeviceIdentifier: "x", ImportedDeviceIdentityType: "IMEI"},
			wantErr: true,
		},
		{
			name:    "empty identifier",
			record:  types.DeviceIdentityRecord{ImportedDeviceIdentityType: "imei"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.record.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
