package entra

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterActions(t *testing.T) {
	actions := []string{
		"microsoft.directory/users/standard/read",
		"microsoft.office365.supportTickets/allEntities/allTasks",
		"microsoft.directory/users/basic/update",
		"microsoft.office365.webPortal/allEntities/standard",
	}

	kept, excluded := FilterActions(actions, DefaultExcludedActions)

	assert.Equal(t, []string{
		"microsoft.directory/users/standard/read",
		"microsoft.directory/users/basic/update",
	}, kept)
	assert.Equal(t, []string{
		"microsoft.office365.supportTickets/allEntities/allTasks",
		"microsoft.office365.webPortal/allEntities/standard",
	}, excluded)

	// Nothing is lost and nothing excluded survives the filter.
	assert.Len(t, kept, len(actions)-len(excluded))
	for _, action := range kept {
		assert.NotContains(t, excluded, action)
	}
}

func TestFilterActionsCaseInsensitive(t *testing.T) {
	actions := []string{"Microsoft.Office365.SupportTickets/allEntities/allTasks"}

	kept, excluded := FilterActions(actions, DefaultExcludedActions)

	assert.Empty(t, kept)
	require.Len(t, excluded, 1)
	assert.Equal(t, actions[0], excluded[0])
}

func TestFilterActionsNoMatches(t *testing.T) {
	actions := []string{
		"microsoft.directory/groups/standard/read",
		"microsoft.directory/groups/basic/update",
	}

	kept, excluded := FilterActions(actions, DefaultExcludedActions)

	assert.Equal(t, actions, kept)
	assert.Empty(t, excluded)
}

func TestFilterActionsEmptyDenylist(t *testing.T) {
	actions := []string{"microsoft.directory/users/standard/read"}

	kept, excluded := FilterActions(actions, nil)

	assert.Equal(t, actions, kept)
	assert.Empty(t, excluded)
}

func TestPartitionSupported(t *testing.T) {
	actions := []string{
		"microsoft.directory/users/standard/read",
		"microsoft.office365.messageCenter/messages/read",
		"microsoft.azure.serviceHealth/allEntities/allTasks",
		"microsoft.directory/groups/basic/update",
	}

	supported, unsupported := PartitionSupported(actions)

	assert.Equal(t, []string{
		"microsoft.directory/users/standard/read",
		"microsoft.directory/groups/basic/update",
	}, supported)
	assert.Equal(t, []string{
		"microsoft.azure.serviceHealth/allEntities/allTasks",
		"microsoft.office365.messageCenter/messages/read",
	}, unsupported)

	for _, action := range supported {
		assert.True(t, strings.HasPrefix(action, "microsoft.directory/"))
	}
}

func TestSplitActionList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "empty",
			raw:  "",
			want: nil,
		},
		{
			name: "single",
			raw:  "microsoft.directory/users/standard/read",
			want: []string{"microsoft.directory/users/standard/read"},
		},
		{
			name: "spaces and empty segments",
			raw:  " a/b/c ,, d/e/f ",
			want: []string{"a/b/c", "d/e/f"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitActionList(tc.raw))
		})
	}
}

func TestRoleDefinitionFilterEscapesQuotes(t *testing.T) {
	assert.Equal(t,
		"displayName eq 'User Administrator'",
		roleDefinitionFilter("User Administrator"))
	assert.Equal(t,
		"displayName eq 'O''Brien''s Role'",
		roleDefinitionFilter("O'Brien's Role"))
}
