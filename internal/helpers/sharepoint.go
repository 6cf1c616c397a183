package helpers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/koltyakov/gosip"
	"github.com/koltyakov/gosip/api"
	azurecert "github.com/koltyakov/gosip/auth/azurecert"
	azureenv "github.com/koltyakov/gosip/auth/azureenv"
	device "github.com/koltyakov/gosip/auth/device"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

// NewSharePointClient builds a gosip client for the given site, mapping the
// auth-method option onto the matching gosip strategy. The raw SPClient is
// returned alongside the fluent API for endpoints gosip does not model.
func NewSharePointClient(siteURL string, opts []*types.Option) (*api.SP, *gosip.SPClient, error) {
	method := optionValue(opts, o.AuthMethodOpt.Name, "default")
	tenantID := optionValue(opts, o.TenantIDOpt.Name, "")
	clientID := optionValue(opts, o.ClientIDOpt.Name, "")

	var auth gosip.AuthCnfg
	switch method {
	case "certificate":
		auth = &azurecert.AuthCnfg{
			SiteURL:  siteURL,
			TenantID: tenantID,
			ClientID: clientID,
			CertPath: optionValue(opts, o.CertificatePathOpt.Name, ""),
			CertPass: optionValue(opts, o.CertificatePasswordOpt.Name, ""),
		}
	case "device-code":
		auth = &device.AuthCnfg{
			SiteURL:  siteURL,
			TenantID: tenantID,
			ClientID: clientID,
		}
	case "default", "managed-identity", "client-secret":
		// The azureenv strategy resolves through the azidentity default
		// chain, which covers env vars, managed identity and az login.
		auth = &azureenv.AuthCnfg{
			SiteURL: siteURL,
		}
	default:
		return nil, nil, fmt.Errorf("auth method %q is not supported for SharePoint", method)
	}

	client := &gosip.SPClient{AuthCnfg: auth}
	return api.NewSP(client), client, nil
}

// AdminURLFromSite derives the tenant admin center URL from any site URL,
// e.g. https://contoso.sharepoint.com/sites/hr -> https://contoso-admin.sharepoint.com.
func AdminURLFromSite(siteURL string) (string, error) {
	parsed, err := url.Parse(siteURL)
	if err != nil {
		return "", fmt.Errorf("invalid site URL %q: %w", siteURL, err)
	}

	host := parsed.Hostname()
	tenant, found := strings.CutSuffix(host, ".sharepoint.com")
	if !found || tenant == "" {
		return "", fmt.Errorf("%q is not a *.sharepoint.com URL", siteURL)
	}
	if strings.HasSuffix(tenant, "-admin") {
		return "https://" + host, nil
	}

	return fmt.Sprintf("https://%s-admin.sharepoint.com", tenant), nil
}
