package console

import (
	"context"

	"github.com/edvin/backupdesk/internal/backend"
)

// ArchiveView drives the backup archive screen for one destination at a
// time. Archives are immutable; the only mutations are create, restore,
// and delete, each followed by exactly one re-fetch.
type ArchiveView struct {
	client   *backend.Client
	notifier Notifier

	destinationID int64
	archives      []backend.Archive
}

func NewArchiveView(client *backend.Client, notifier Notifier) *ArchiveView {
	return &ArchiveView{
		client:   client,
		notifier: notifier,
	}
}

// Archives returns the rows from the last refresh.
func (v *ArchiveView) Archives() []backend.Archive {
	return v.archives
}

// SelectDestination switches the view to a destination and fetches its
// archives.
func (v *ArchiveView) SelectDestination(ctx context.Context, destinationID int64) backend.Response {
	v.destinationID = destinationID
	return v.Refresh(ctx)
}

// Refresh re-fetches the archive list for the selected destination.
func (v *ArchiveView) Refresh(ctx context.Context) backend.Response {
	archives, resp := v.client.ListArchives(ctx, v.destinationID)
	v.archives = archives
	if !resp.OK() {
		v.notifier.Notify(Notice{
			Message: resp.ErrorMessage("failed to list backups"),
			Status:  resp.Status,
		})
	}
	return resp
}

// Create triggers an immediate backup of a source to the selected
// destination.
func (v *ArchiveView) Create(ctx context.Context, sourceID int64) error {
	resp := v.client.CreateArchive(ctx, sourceID, v.destinationID)
	return v.finish(ctx, resp, "failed to create backup")
}

// Restore pushes a stored archive back into a source. Restoring
// overwrites live data, so it requires caller-side confirmation.
func (v *ArchiveView) Restore(ctx context.Context, sourceID int64, path string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	resp := v.client.RestoreArchive(ctx, sourceID, v.destinationID, path)
	return v.finish(ctx, resp, "failed to restore backup")
}

// Delete removes a stored archive after caller-side confirmation.
func (v *ArchiveView) Delete(ctx context.Context, path string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	resp := v.client.DeleteArchive(ctx, v.destinationID, path)
	return v.finish(ctx, resp, "failed to delete backup")
}

func (v *ArchiveView) finish(ctx context.Context, resp backend.Response, fallback string) error {
	if resp.OK() {
		v.notifier.Notify(Notice{Message: resp.Message, Status: resp.Status})
		v.Refresh(ctx)
		return nil
	}

	v.notifier.Notify(Notice{
		Message: resp.ErrorMessage(fallback),
		Status:  resp.Status,
	})
	return nil
}
