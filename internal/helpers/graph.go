package helpers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/golang-jwt/jwt/v5"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/microsoftgraph/msgraph-sdk-go/models/odataerrors"
	"github.com/microsoftgraph/msgraph-sdk-go/organization"
	"github.com/sayedpfe/tenantctl/internal/message"
)

var graphScopes = []string{"https://graph.microsoft.com/.default"}

// NewGraphClient creates a Microsoft Graph SDK client from a token credential.
func NewGraphClient(cred azcore.TokenCredential) (*msgraphsdk.GraphServiceClient, error) {
	graphClient, err := msgraphsdk.NewGraphServiceClientWithCredentials(cred, graphScopes)
	if err != nil {
		return nil, fmt.Errorf("failed to create Graph client: %w", err)
	}
	return graphClient, nil
}

// GetTenantDetails gets the display name and ID of the signed-in tenant.
func GetTenantDetails(ctx context.Context, cred azcore.TokenCredential) (string, string, error) {
	graphClient, err := NewGraphClient(cred)
	if err != nil {
		return "", "", err
	}

	org, err := graphClient.Organization().Get(ctx, &organization.OrganizationRequestBuilderGetRequestConfiguration{})
	if err != nil {
		return "", "", fmt.Errorf("failed to get organization details: %w", err)
	}

	tenantName := "Unknown"
	tenantID := "Unknown"

	if orgValue := org.GetValue(); len(orgValue) > 0 {
		if displayName := orgValue[0].GetDisplayName(); displayName != nil {
			tenantName = *displayName
		}
		if id := orgValue[0].GetId(); id != nil {
			tenantID = *id
		}
	}

	return tenantName, tenantID, nil
}

// TenantIDFromToken extracts the tenant ID from the credential's own access
// token. ParseUnverified is fine here: the token came straight from the
// authority and is only mined for its "tid" claim, never trusted as input.
func TenantIDFromToken(ctx context.Context, cred azcore.TokenCredential) (string, error) {
	token, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: graphScopes})
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	parser := new(jwt.Parser)
	claims := jwt.MapClaims{}
	_, _, err = parser.ParseUnverified(token.Token, claims)
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	tid, ok := claims["tid"].(string)
	if !ok {
		return "", errors.New("could not find 'tid' claim in token")
	}
	return tid, nil
}

// HandleGraphError prints the odata error detail plus an actionable hint for
// the failure modes the admin scripts kept running into.
func HandleGraphError(err error, operation string) {
	var odataErr *odataerrors.ODataError
	if !errors.As(err, &odataErr) {
		message.Error("Graph operation %q failed: %v", operation, err)
		return
	}

	code, detail := "", ""
	if mainErr := odataErr.GetErrorEscaped(); mainErr != nil {
		if c := mainErr.GetCode(); c != nil {
			code = *c
		}
		if m := mainErr.GetMessage(); m != nil {
			detail = *m
		}
	}

	message.Error("Graph operation %q failed: %s %s", operation, code, detail)

	switch code {
	case "Authorization_RequestDenied":
		message.Warning("The signed-in principal lacks the required Graph permission. Admin consent may not have been granted.")
	case "Request_ResourceNotFound":
		message.Warning("The resource does not exist in this tenant, or the wrong tenant is selected.")
	case "Request_UnsupportedQuery":
		message.Warning("The query needs ConsistencyLevel: eventual and $count=true to work against directory objects.")
	}
}
