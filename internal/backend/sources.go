package backend

import (
	"context"
	"net/http"

	"github.com/edvin/backupdesk/internal/registry"
)

type addSourceRequest struct {
	SourceType  registry.Kind        `json:"source_type"`
	SourceName  string               `json:"source_name"`
	Credentials registry.Credentials `json:"credentials"`
}

type updateSourceRequest struct {
	SourceID    int64                     `json:"source_id"`
	SourceName  *string                   `json:"source_name,omitempty"`
	Credentials *registry.CredentialsPatch `json:"credentials,omitempty"`
}

// ListSources returns all backup sources for the tenant. On any failure
// the slice is empty and the Response carries the error detail.
func (c *Client) ListSources(ctx context.Context) ([]Source, Response) {
	resp := c.do(ctx, http.MethodGet, "backup-sources/list", nil, nil,
		"failed to list backup sources")
	return unwrapList[Source](resp, "backup_sources"), resp
}

// CreateSource adds a backup source. The caller must have produced a
// non-empty credentials URL; the gateway does not re-validate it.
func (c *Client) CreateSource(ctx context.Context, name string, kind registry.Kind, creds registry.Credentials) Response {
	return c.do(ctx, http.MethodPost, "backup-sources/add", nil, addSourceRequest{
		SourceType:  kind,
		SourceName:  name,
		Credentials: creds,
	}, "failed to add backup source")
}

// UpdateSource applies a partial update: a nil name keeps the current one
// and the patch carries only the fields the user actually changed.
func (c *Client) UpdateSource(ctx context.Context, id int64, name *string, patch *registry.CredentialsPatch) Response {
	return c.do(ctx, http.MethodPost, "backup-sources/update", nil, updateSourceRequest{
		SourceID:    id,
		SourceName:  name,
		Credentials: patch,
	}, "failed to update backup source")
}

// DeleteSource removes a backup source. Interactive confirmation is the
// caller's responsibility.
func (c *Client) DeleteSource(ctx context.Context, id int64) Response {
	return c.do(ctx, http.MethodDelete, "backup-sources/delete",
		queryOf("source_id", itoa(id)), nil, "failed to delete backup source")
}

// TestSourceConnection asks the backend to probe the source. Success or
// failure is communicated only through the normalized status.
func (c *Client) TestSourceConnection(ctx context.Context, id int64) Response {
	return c.do(ctx, http.MethodGet, "backup-sources/test-connection",
		queryOf("source_id", itoa(id)), nil, "failed to test backup source connection")
}
