package options

import (
	"regexp"

	"github.com/sayedpfe/tenantctl/pkg/types"
)

var uuidFormat = regexp.MustCompile("^[0-9A-Fa-f]{8}-([0-9A-Fa-f]{4}-){3}[0-9A-Fa-f]{12}$")

// The credential modes the source tenants are administered with. "default"
// walks the azidentity chain (environment, managed identity, CLI).
var AuthMethodOpt = types.Option{
	Name:        "auth-method",
	Description: "Credential mode: default, device-code, client-secret, certificate or managed-identity",
	Required:    false,
	Type:        types.String,
	Value:       "default",
	ValueList: []string{
		"default",
		"device-code",
		"client-secret",
		"certificate",
		"managed-identity",
	},
}

var TenantIDOpt = types.Option{
	Name:        "tenant-id",
	Short:       "t",
	Description: "Entra ID tenant ID",
	Required:    false,
	Type:        types.String,
	Value:       "",
	ValueFormat: uuidFormat,
}

var ClientIDOpt = types.Option{
	Name:        "client-id",
	Description: "App registration client ID",
	Required:    false,
	Type:        types.String,
	Value:       "",
	ValueFormat: uuidFormat,
}

var ClientSecretOpt = types.Option{
	Name:        "client-secret",
	Description: "App registration client secret",
	Required:    false,
	Type:        types.String,
	Value:       "",
	Sensitive:   true,
}

var CertificatePathOpt = types.Option{
	Name:        "certificate",
	Description: "Path to a PKCS#12 certificate for app-only auth",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var CertificatePasswordOpt = types.Option{
	Name:        "certificate-password",
	Description: "Password protecting the PKCS#12 certificate",
	Required:    false,
	Type:        types.String,
	Value:       "",
	Sensitive:   true,
}
