package backend

import (
	"context"
	"net/http"
)

// ListLogs returns the tenant's system log entries.
func (c *Client) ListLogs(ctx context.Context) ([]LogEntry, Response) {
	resp := c.do(ctx, http.MethodGet, "system/logs", nil, nil,
		"failed to retrieve system logs")
	return unwrapList[LogEntry](resp, "logs"), resp
}
