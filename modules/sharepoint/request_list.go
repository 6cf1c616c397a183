package sharepoint

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/koltyakov/gosip/api"
	"github.com/sayedpfe/tenantctl/internal/helpers"
	"github.com/sayedpfe/tenantctl/internal/message"
	op "github.com/sayedpfe/tenantctl/internal/output_providers"
	"github.com/sayedpfe/tenantctl/modules"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/stages"
	"github.com/sayedpfe/tenantctl/pkg/types"
)

type RequestList struct {
	modules.BaseModule
}

var RequestListMetadata = modules.Metadata{
	Id:          "request-list",
	Name:        "Access Request Tracking List",
	Description: "Provision and maintain the access-request tracking list on a site",
	Platform:    modules.SharePoint,
	Authors:     []string{"sayedpfe"},
	OpsecLevel:  modules.Moderate,
	References: []string{
		"https://learn.microsoft.com/en-us/sharepoint/dev/sp-add-ins/working-with-lists-and-list-items-with-rest",
	},
}

var RequestListOptions = []*types.Option{
	&o.RequestActionOpt,
	&o.SiteURLOpt,
	&o.ListTitleOpt,
	types.SetRequired(o.RequestTitleOpt, false),
	types.SetRequired(o.RequesterOpt, false),
	&o.ResourceOpt,
	types.SetRequired(o.ItemIDOpt, false),
	types.SetRequired(o.StatusOpt, false),
	&o.ApprovedByOpt,
	&o.AuthMethodOpt,
	&o.TenantIDOpt,
	&o.ClientIDOpt,
	&o.CertificatePathOpt,
	&o.CertificatePasswordOpt,
}

var RequestListOutputProviders = []func(options []*types.Option) types.OutputProvider{
	op.NewConsoleProvider,
	op.NewJsonFileProvider,
}

// trackingFields are the columns the tracking list carries on top of Title.
// Status transitions past Pending are driven by the approval flow attached to
// the list, not by this tool.
var trackingFields = []types.FieldDefinition{
	{InternalName: "Requester", Title: "Requester", TypeKind: 2, Required: true},
	{InternalName: "Resource", Title: "Resource", TypeKind: 2},
	{InternalName: "Status", Title: "Status", TypeKind: 6, Required: true,
		Choices: []string{"Pending", "Approved", "Rejected", "Completed"}},
	{InternalName: "ApprovedBy", Title: "Approved By", TypeKind: 2},
	{InternalName: "RequestedAt", Title: "Requested At", TypeKind: 4},
}

func NewRequestList(options []*types.Option, run modules.Run) (modules.Module, error) {
	return &RequestList{
		BaseModule: modules.BaseModule{
			Metadata:        RequestListMetadata,
			Options:         options,
			Run:             run,
			OutputProviders: modules.RenderOutputProviders(RequestListOutputProviders, options),
		},
	}, nil
}

func (m *RequestList) Invoke() error {
	defer close(m.Run.Data)

	ctx := context.Background()

	siteURL := m.GetOptionByName(o.SiteURLOpt.Name).Value
	listTitle := m.GetOptionByName(o.ListTitleOpt.Name).Value

	sp, _, err := helpers.NewSharePointClient(siteURL, m.Options)
	if err != nil {
		return err
	}
	sp = sp.Conf(&api.RequestConfig{Context: ctx})

	switch action := m.GetOptionByName(o.RequestActionOpt.Name).Value; action {
	case "create":
		return m.createList(sp, listTitle)
	case "add":
		return m.addRequest(sp, listTitle)
	case "set-status":
		return m.setStatus(sp, listTitle)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

func (m *RequestList) createList(sp *api.SP, listTitle string) error {
	_, err := sp.Web().Lists().Add(listTitle, map[string]interface{}{
		"BaseTemplate": 100,
		"Description":  "Access requests tracked for approval",
	})
	if err != nil {
		return fmt.Errorf("failed to create list %q: %w", listTitle, err)
	}

	list := sp.Web().Lists().GetByTitle(listTitle)
	for _, field := range trackingFields {
		if _, err := list.Fields().CreateFieldAsXML(stages.FieldSchemaXML(field), 0); err != nil {
			return fmt.Errorf("failed to add field %s: %w", field.InternalName, err)
		}
	}

	message.Success("Created tracking list %q with %d columns", listTitle, len(trackingFields))

	m.Run.Data <- m.MakeResult(map[string]interface{}{
		"list":    listTitle,
		"columns": len(trackingFields),
	}, types.WithFilename("request-list-report.json"))

	return nil
}

func (m *RequestList) addRequest(sp *api.SP, listTitle string) error {
	title := m.GetOptionByName(o.RequestTitleOpt.Name).Value
	requester := m.GetOptionByName(o.RequesterOpt.Name).Value
	if title == "" || requester == "" {
		return fmt.Errorf("the add action needs --title and --requester")
	}

	request := types.RequestItem{
		Title:       title,
		Requester:   requester,
		Resource:    m.GetOptionByName(o.ResourceOpt.Name).Value,
		Status:      "Pending",
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(map[string]interface{}{
		"Title":       request.Title,
		"Requester":   request.Requester,
		"Resource":    request.Resource,
		"Status":      request.Status,
		"RequestedAt": request.RequestedAt,
	})
	if err != nil {
		return err
	}

	res, err := sp.Web().Lists().GetByTitle(listTitle).Items().Add(payload)
	if err != nil {
		return fmt.Errorf("failed to add request: %w", err)
	}

	var created struct {
		Id int
	}
	if err := json.Unmarshal(res.Normalized(), &created); err == nil {
		request.ID = created.Id
	}

	message.Success("Added request %d %q for %s", request.ID, request.Title, request.Requester)

	m.Run.Data <- m.MakeResult(request,
		types.WithFilename("request-list-report.json"))

	return nil
}

func (m *RequestList) setStatus(sp *api.SP, listTitle string) error {
	itemID := m.GetOptionByName(o.ItemIDOpt.Name).Value
	status := m.GetOptionByName(o.StatusOpt.Name).Value
	if itemID == "" || status == "" {
		return fmt.Errorf("the set-status action needs --item-id and --status")
	}
	id, err := strconv.Atoi(itemID)
	if err != nil {
		return fmt.Errorf("invalid item ID %q: %w", itemID, err)
	}

	update := map[string]interface{}{
		"Status": status,
	}
	if approvedBy := m.GetOptionByName(o.ApprovedByOpt.Name).Value; approvedBy != "" {
		update["ApprovedBy"] = approvedBy
	}

	payload, err := json.Marshal(update)
	if err != nil {
		return err
	}

	if _, err := sp.Web().Lists().GetByTitle(listTitle).Items().GetByID(id).Update(payload); err != nil {
		return fmt.Errorf("failed to update request %d: %w", id, err)
	}

	message.Success("Request %d moved to %s", id, status)

	m.Run.Data <- m.MakeResult(map[string]interface{}{
		"id":     id,
		"status": status,
	}, types.WithFilename("request-list-report.json"))

	return nil
}
