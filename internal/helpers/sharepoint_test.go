package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminURLFromSite(t *testing.T) {
	tests := []struct {
		name    string
		siteURL string
		want    string
		wantErr bool
	}{
		{
			name:    "site collection",
			siteURL: "https://contoso.sharepoint.com/sites/hr",
			want:    "https://contoso-admin.sharepoint.com",
		},
		{
			name:    "tenant root",
			siteURL: "https://contoso.sharepoint.com",
			want:    "https://contoso-admin.sharepoint.com",
		},
		{
			name:    "already the admin center",
			siteURL: "https://contoso-admin.sharepoint.com",
			want:    "https://contoso-admin.sharepoint.com",
		},
		{
			name:    "not a sharepoint host",
			siteURL: "https://contoso.example.com/sites/hr",
			wantErr: true,
		},
		{
			name:    "bare sharepoint domain",
			siteURL: "https://.sharepoint.com",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AdminURLFromSite(tc.siteURL)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
