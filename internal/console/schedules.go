package console

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/edvin/backupdesk/internal/backend"
	"github.com/edvin/backupdesk/internal/schedule"
)

// ScheduleView drives the backup schedule screen. It resolves source and
// destination names from their own collections, so a refresh fetches all
// three lists concurrently.
type ScheduleView struct {
	client   *backend.Client
	notifier Notifier

	schedules    []backend.Schedule
	sources      map[int64]string
	destinations map[int64]string

	submitting bool
}

func NewScheduleView(client *backend.Client, notifier Notifier) *ScheduleView {
	return &ScheduleView{
		client:   client,
		notifier: notifier,
	}
}

// Schedules returns the rows from the last refresh.
func (v *ScheduleView) Schedules() []backend.Schedule {
	return v.schedules
}

// SourceName resolves a source id to its display name.
func (v *ScheduleView) SourceName(id int64) string {
	if name, ok := v.sources[id]; ok {
		return name
	}
	return fmt.Sprintf("source #%d", id)
}

// DestinationName resolves a destination id to its display name.
func (v *ScheduleView) DestinationName(id int64) string {
	if name, ok := v.destinations[id]; ok {
		return name
	}
	return fmt.Sprintf("destination #%d", id)
}

// Refresh re-fetches schedules, sources, and destinations. The three
// calls run concurrently; the view keeps zero rows when the schedule
// list itself fails.
func (v *ScheduleView) Refresh(ctx context.Context) backend.Response {
	var (
		schedules     []backend.Schedule
		schedulesResp backend.Response
		sources       []backend.Source
		destinations  []backend.Destination
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		schedules, schedulesResp = v.client.ListSchedules(gctx)
		return nil
	})
	g.Go(func() error {
		sources, _ = v.client.ListSources(gctx)
		return nil
	})
	g.Go(func() error {
		destinations, _ = v.client.ListDestinations(gctx)
		return nil
	})
	g.Wait()

	v.schedules = schedules
	v.sources = make(map[int64]string, len(sources))
	for _, s := range sources {
		v.sources[s.ID] = s.Name
	}
	v.destinations = make(map[int64]string, len(destinations))
	for _, d := range destinations {
		v.destinations[d.ID] = d.Name
	}

	if !schedulesResp.OK() {
		v.notifier.Notify(Notice{
			Message: schedulesResp.ErrorMessage("failed to list backup schedules"),
			Status:  schedulesResp.Status,
		})
	}
	return schedulesResp
}

// validate gates a schedule submission before any network call.
func (v *ScheduleView) validate(spec *backend.ScheduleSpec) error {
	if spec.Name == "" {
		return errors.New("name is required")
	}
	if err := schedule.ValidateKeepN(spec.KeepN); err != nil {
		return err
	}
	if _, ok := v.sources[spec.SourceID]; !ok {
		return fmt.Errorf("source #%d does not exist", spec.SourceID)
	}
	if _, ok := v.destinations[spec.DestinationID]; !ok {
		return fmt.Errorf("destination #%d does not exist", spec.DestinationID)
	}

	expr, err := schedule.Normalize(spec.Expression)
	if err != nil {
		return err
	}
	spec.Expression = expr
	return nil
}

// Submit creates a schedule when id is zero, otherwise updates it. The
// expression may be a preset name or a custom cron string. On success the
// view re-fetches once.
func (v *ScheduleView) Submit(ctx context.Context, id int64, spec backend.ScheduleSpec) error {
	if v.submitting {
		return errors.New("a submission is already in flight")
	}

	if err := v.validate(&spec); err != nil {
		v.notifier.Notify(Notice{Message: err.Error(), Status: 400})
		return err
	}

	v.submitting = true
	defer func() { v.submitting = false }()

	var resp backend.Response
	if id == 0 {
		resp = v.client.CreateSchedule(ctx, spec)
	} else {
		resp = v.client.UpdateSchedule(ctx, id, spec)
	}

	if resp.OK() {
		v.notifier.Notify(Notice{Message: resp.Message, Status: resp.Status})
		v.Refresh(ctx)
		return nil
	}

	v.notifier.Notify(Notice{
		Message: resp.ErrorMessage("failed to save backup schedule"),
		Status:  resp.Status,
	})
	return nil
}

// Delete removes a schedule after caller-side confirmation.
func (v *ScheduleView) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	resp := v.client.DeleteSchedule(ctx, id)
	if resp.OK() {
		v.notifier.Notify(Notice{Message: resp.Message, Status: resp.Status})
		v.Refresh(ctx)
		return nil
	}

	v.notifier.Notify(Notice{
		Message: resp.ErrorMessage("failed to delete backup schedule"),
		Status:  resp.Status,
	})
	return nil
}
