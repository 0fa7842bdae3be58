package console

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/backupdesk/internal/backend"
)

func newArchiveView(t *testing.T, handler http.Handler) (*ArchiveView, *recorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := backend.NewClient(srv.URL, staticTokens{}, zerolog.Nop())
	rec := &recorder{}
	return NewArchiveView(client, rec), rec
}

func TestArchiveView_SelectDestination_ListsArchives(t *testing.T) {
	view, rec := newArchiveView(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/backup/list", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("backup_destination_id"))
		w.Write([]byte(`{"message": "Backups retrieved", "data": {"backups": [
			{"name": "db1-20260830.dump", "path": "nightly/db1-20260830.dump", "source": "db1", "source_id": 3, "size": 1048576, "modified": "2026-08-30T03:00:12Z"}
		]}}`))
	}))

	resp := view.SelectDestination(context.Background(), 7)
	require.True(t, resp.OK())
	require.Len(t, view.Archives(), 1)
	assert.Equal(t, "db1-20260830.dump", view.Archives()[0].Name)
	assert.Equal(t, int64(3), view.Archives()[0].SourceID)
	assert.Empty(t, rec.notices)
}

func TestArchiveView_Create_RefetchesOnce(t *testing.T) {
	var creates, lists int
	view, rec := newArchiveView(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/backup/create":
			creates++
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "3", r.URL.Query().Get("backup_source_id"))
			assert.Equal(t, "7", r.URL.Query().Get("backup_destination_id"))
			w.Write([]byte(`{"message": "Backup created", "data": null}`))
		case "/api/v1/backup/list":
			lists++
			w.Write([]byte(`{"message": "Backups retrieved", "data": {"backups": []}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	view.destinationID = 7

	require.NoError(t, view.Create(context.Background(), 3))
	assert.Equal(t, 1, creates)
	assert.Equal(t, 1, lists)
	require.Len(t, rec.notices, 1)
	assert.Equal(t, "Backup created", rec.last().Message)
	assert.True(t, rec.last().Success())
}

func TestArchiveView_Create_FailureNoRefetch(t *testing.T) {
	var lists int
	view, rec := newArchiveView(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/backup/list" {
			lists++
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"detail": "destination unreachable"}`))
	}))
	view.destinationID = 7

	require.NoError(t, view.Create(context.Background(), 3))
	assert.Zero(t, lists)
	require.Len(t, rec.notices, 1)
	assert.Equal(t, "destination unreachable", rec.last().Message)
	assert.Equal(t, http.StatusBadGateway, rec.last().Status)
}

func TestArchiveView_Restore_RequiresConfirmation(t *testing.T) {
	var calls int
	view, _ := newArchiveView(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	err := view.Restore(context.Background(), 3, "nightly/db1.dump", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Zero(t, calls)
}

func TestArchiveView_Restore_Confirmed(t *testing.T) {
	var restores int
	view, rec := newArchiveView(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/backup/restore":
			restores++
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "nightly/db1.dump", r.URL.Query().Get("backup_path"))
			w.Write([]byte(`{"message": "Backup restored", "data": null}`))
		case "/api/v1/backup/list":
			w.Write([]byte(`{"message": "Backups retrieved", "data": {"backups": []}}`))
		}
	}))
	view.destinationID = 7

	require.NoError(t, view.Restore(context.Background(), 3, "nightly/db1.dump", true))
	assert.Equal(t, 1, restores)
	assert.Equal(t, "Backup restored", rec.last().Message)
}

func TestArchiveView_Delete_RequiresConfirmation(t *testing.T) {
	var calls int
	view, _ := newArchiveView(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	err := view.Delete(context.Background(), "nightly/db1.dump", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Zero(t, calls)

	require.NoError(t, view.Delete(context.Background(), "nightly/db1.dump", true))
	assert.Equal(t, 2, calls)
}
