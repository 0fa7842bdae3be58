package backend

import (
	"context"
	"net/http"
)

// ListArchives returns the backup artifacts stored at a destination.
func (c *Client) ListArchives(ctx context.Context, destinationID int64) ([]Archive, Response) {
	resp := c.do(ctx, http.MethodGet, "backup/list",
		queryOf("backup_destination_id", itoa(destinationID)), nil,
		"failed to list backups")
	return unwrapList[Archive](resp, "backups"), resp
}

// CreateArchive triggers an immediate backup of a source to a destination.
func (c *Client) CreateArchive(ctx context.Context, sourceID, destinationID int64) Response {
	return c.do(ctx, http.MethodPut, "backup/create", queryOf(
		"backup_source_id", itoa(sourceID),
		"backup_destination_id", itoa(destinationID),
	), nil, "failed to create backup")
}

// RestoreArchive restores a stored backup into a source. Interactive
// confirmation is the caller's responsibility.
func (c *Client) RestoreArchive(ctx context.Context, sourceID, destinationID int64, path string) Response {
	return c.do(ctx, http.MethodPost, "backup/restore", queryOf(
		"backup_source_id", itoa(sourceID),
		"backup_destination_id", itoa(destinationID),
		"backup_path", path,
	), nil, "failed to restore backup")
}

// DeleteArchive removes a stored backup from a destination.
func (c *Client) DeleteArchive(ctx context.Context, destinationID int64, path string) Response {
	return c.do(ctx, http.MethodDelete, "backup/delete", queryOf(
		"backup_destination_id", itoa(destinationID),
		"backup_path", path,
	), nil, "failed to delete backup")
}
