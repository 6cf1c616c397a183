package helpers

import (
	"context"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/sayedpfe/tenantctl/internal/message"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

// GetCredential builds a token credential from the auth-method option. The
// same modes the tenant scripts were run with are supported: the default
// azidentity chain, device code, client secret, client certificate and
// managed identity.
func GetCredential(opts []*types.Option) (azcore.TokenCredential, error) {
	method := optionValue(opts, o.AuthMethodOpt.Name, "default")
	tenantID := optionValue(opts, o.TenantIDOpt.Name, "")
	clientID := optionValue(opts, o.ClientIDOpt.Name, "")

	switch method {
	case "default":
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to get Azure credentials: %w", err)
		}
		return cred, nil

	case "device-code":
		cred, err := azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
			TenantID: tenantID,
			ClientID: clientID,
			UserPrompt: func(ctx context.Context, dc azidentity.DeviceCodeMessage) error {
				message.Info("%s", dc.Message)
				return nil
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to start device code flow: %w", err)
		}
		return cred, nil

	case "client-secret":
		secret := optionValue(opts, o.ClientSecretOpt.Name, "")
		if tenantID == "" || clientID == "" || secret == "" {
			return nil, fmt.Errorf("client-secret auth requires tenant-id, client-id and client-secret")
		}
		cred, err := azidentity.NewClientSecretCredential(tenantID, clientID, secret, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build client secret credential: %w", err)
		}
		return cred, nil

	case "certificate":
		certPath := optionValue(opts, o.CertificatePathOpt.Name, "")
		certPass := optionValue(opts, o.CertificatePasswordOpt.Name, "")
		if tenantID == "" || clientID == "" || certPath == "" {
			return nil, fmt.Errorf("certificate auth requires tenant-id, client-id and certificate")
		}
		data, err := os.ReadFile(certPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read certificate %s: %w", certPath, err)
		}
		certs, key, err := azidentity.ParseCertificates(data, []byte(certPass))
		if err != nil {
			return nil, fmt.Errorf("failed to parse certificate %s: %w", certPath, err)
		}
		cred, err := azidentity.NewClientCertificateCredential(tenantID, clientID, certs, key, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build certificate credential: %w", err)
		}
		return cred, nil

	case "managed-identity":
		var miOpts *azidentity.ManagedIdentityCredentialOptions
		if clientID != "" {
			miOpts = &azidentity.ManagedIdentityCredentialOptions{
				ID: azidentity.ClientID(clientID),
			}
		}
		cred, err := azidentity.NewManagedIdentityCredential(miOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to build managed identity credential: %w", err)
		}
		return cred, nil

	default:
		return nil, fmt.Errorf("unknown auth method %q", method)
	}
}

func optionValue(opts []*types.Option, name, fallback string) string {
	opt := types.GetOptionByName(name, opts)
	if opt == nil || opt.Value == "" {
		return fallback
	}
	return opt.Value
}
