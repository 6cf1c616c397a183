package entra

import (
	"sort"
	"strings"
)

// DefaultExcludedActions is the fixed denylist stripped from every cloned
// role. These are tenant-wide helpdesk surfaces the cloned roles must not
// carry.
var DefaultExcludedActions = []string{
	"microsoft.office365.supportTickets/allEntities/allTasks",
	"microsoft.office365.serviceHealth/allEntities/allTasks",
	"microsoft.office365.webPortal/allEntities/standard",
}

// Custom directory roles only accept resource actions from these namespaces.
// Anything else is rejected by the service, so it is filtered out locally
// before the create call.
var supportedNamespaces = []string{
	"microsoft.directory/",
}

// FilterActions removes every action present in exclude (case-insensitive)
// and reports which ones matched. The returned kept slice preserves the
// input order; excluded is sorted for stable reporting.
func FilterActions(actions, exclude []string) (kept, excluded []string) {
	denylist := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		if e = strings.TrimSpace(e); e != "" {
			denylist[strings.ToLower(e)] = true
		}
	}

	for _, action := range actions {
		if denylist[strings.ToLower(action)] {
			excluded = append(excluded, action)
			continue
		}
		kept = append(kept, action)
	}

	sort.Strings(excluded)
	return kept, excluded
}

// PartitionSupported splits actions into those custom roles may carry and
// those belonging to unsupported namespaces.
func PartitionSupported(actions []string) (supported, unsupported []string) {
	for _, action := range actions {
		if isSupportedAction(action) {
			supported = append(supported, action)
		} else {
			unsupported = append(unsupported, action)
		}
	}

	sort.Strings(unsupported)
	return supported, unsupported
}

func isSupportedAction(action string) bool {
	lowered := strings.ToLower(action)
	for _, ns := range supportedNamespaces {
		if strings.HasPrefix(lowered, ns) {
			return true
		}
	}
	return false
}

// SplitActionList parses the comma-separated --exclude flag value.
func SplitActionList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var actions []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			actions = append(actions, part)
		}
	}
	return actions
}
