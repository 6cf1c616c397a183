package sharepoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphSitePath(t *testing.T) {
	tests := []struct {
		name    string
		siteURL string
		want    string
	}{
		{
			name:    "site collection",
			siteURL: "https://contoso.sharepoint.com/sites/hr",
			want:    "/sites/contoso.sharepoint.com:/sites/hr",
		},
		{
			name:    "tenant root",
			siteURL: "https://contoso.sharepoint.com",
			want:    "/sites/contoso.sharepoint.com",
		},
		{
			name:    "tenant root with trailing slash",
			siteURL: "https://contoso.sharepoint.com/",
			want:    "/sites/contoso.sharepoint.com",
		},
		{
			name:    "nested web with trailing slash",
			siteURL: "https://contoso.sharepoint.com/sites/hr/benefits/",
			want:    "/sites/contoso.sharepoint.com:/sites/hr/benefits",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := graphSitePath(tc.siteURL)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGraphSitePathRejectsBadURLs(t *testing.T) {
	_, err := graphSitePath("://not-a-url")
	assert.Error(t, err)

	_, err = graphSitePath("/sites/hr")
	assert.Error(t, err)
}
