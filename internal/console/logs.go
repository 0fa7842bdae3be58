package console

import (
	"context"

	"github.com/edvin/backupdesk/internal/backend"
)

// LogView drives the read-only system log screen.
type LogView struct {
	client   *backend.Client
	notifier Notifier

	entries []backend.LogEntry
}

func NewLogView(client *backend.Client, notifier Notifier) *LogView {
	return &LogView{
		client:   client,
		notifier: notifier,
	}
}

// Entries returns the rows from the last refresh.
func (v *LogView) Entries() []backend.LogEntry {
	return v.entries
}

// Refresh re-fetches the tenant's log entries.
func (v *LogView) Refresh(ctx context.Context) backend.Response {
	entries, resp := v.client.ListLogs(ctx)
	v.entries = entries
	if !resp.OK() {
		v.notifier.Notify(Notice{
			Message: resp.ErrorMessage("failed to retrieve system logs"),
			Status:  resp.Status,
		})
	}
	return resp
}
