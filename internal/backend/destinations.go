package backend

import (
	"context"
	"net/http"

	"github.com/edvin/backupdesk/internal/registry"
)

type addDestinationRequest struct {
	DestinationType registry.Kind        `json:"destination_type"`
	DestinationName string               `json:"destination_name"`
	Credentials     registry.Credentials `json:"credentials"`
}

type updateDestinationRequest struct {
	DestinationID   int64                      `json:"destination_id"`
	DestinationName *string                    `json:"destination_name,omitempty"`
	Credentials     *registry.CredentialsPatch `json:"credentials,omitempty"`
}

// ListDestinations returns all backup destinations for the tenant.
func (c *Client) ListDestinations(ctx context.Context) ([]Destination, Response) {
	resp := c.do(ctx, http.MethodGet, "backup-destinations/list", nil, nil,
		"failed to list backup destinations")
	return unwrapList[Destination](resp, "backup_destinations"), resp
}

// CreateDestination adds a backup destination.
func (c *Client) CreateDestination(ctx context.Context, name string, kind registry.Kind, creds registry.Credentials) Response {
	return c.do(ctx, http.MethodPost, "backup-destinations/add", nil, addDestinationRequest{
		DestinationType: kind,
		DestinationName: name,
		Credentials:     creds,
	}, "failed to add backup destination")
}

// UpdateDestination applies a partial update to a destination.
func (c *Client) UpdateDestination(ctx context.Context, id int64, name *string, patch *registry.CredentialsPatch) Response {
	return c.do(ctx, http.MethodPost, "backup-destinations/update", nil, updateDestinationRequest{
		DestinationID:   id,
		DestinationName: name,
		Credentials:     patch,
	}, "failed to update backup destination")
}

// DeleteDestination removes a backup destination.
func (c *Client) DeleteDestination(ctx context.Context, id int64) Response {
	return c.do(ctx, http.MethodDelete, "backup-destinations/delete",
		queryOf("destination_id", itoa(id)), nil, "failed to delete backup destination")
}

// TestDestinationConnection asks the backend to probe the destination.
func (c *Client) TestDestinationConnection(ctx context.Context, id int64) Response {
	return c.do(ctx, http.MethodGet, "backup-destinations/test-connection",
		queryOf("destination_id", itoa(id)), nil, "failed to test backup destination connection")
}
