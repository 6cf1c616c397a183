package types

import "fmt"

// Identity types accepted by the Intune imported device identity endpoint.
const (
	IdentityTypeIMEI        = "imei"
	IdentityTypeSerial      = "serialNumber"
	IdentityTypeManufSerial = "manufacturerModelSerial"
)

var allowedIdentityTypes = []string{
	IdentityTypeIMEI,
	IdentityTypeSerial,
	IdentityTypeManufSerial,
}

// DeviceIdentityRecord is one device identity to submit for bulk import.
type DeviceIdentityRecord struct {
	ImportedDeviceIdentifier   string `json:"importedDeviceIdentifier"`
	ImportedDeviceIdentityType string `json:"importedDeviceIdentityType"`
	Description                string `json:"description,omitempty"`
}

// Validate rejects a record locally, before any network call is made.
func (r DeviceIdentityRecord) Validate() error {
	if r.ImportedDeviceIdentifier == "" {
		return fmt.Errorf("device identifier must not be empty")
	}

	for _, allowed := range allowedIdentityTypes {
		if r.ImportedDeviceIdentityType == allowed {
			return nil
		}
	}

	return fmt.Errorf("unsupported identity type %q, must be one of %v",
		r.ImportedDeviceIdentityType, allowedIdentityTypes)
}

// DeviceImportStatus is the per-record outcome reported by the import endpoint.
type DeviceImportStatus struct {
	Identifier string `json:"identifier"`
	Status     string `json:"status"`
	Detail     string `json:"detail,omitempty"`
}
