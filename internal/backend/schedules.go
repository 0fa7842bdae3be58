package backend

import (
	"context"
	"net/http"
)

type addScheduleRequest struct {
	ScheduleName        string `json:"schedule_name"`
	BackupSourceID      int64  `json:"backup_source_id"`
	BackupDestinationID int64  `json:"backup_destination_id"`
	BackupSchedule      string `json:"backup_schedule"`
	KeepN               int    `json:"keep_n"`
}

type updateScheduleRequest struct {
	ScheduleID          int64  `json:"schedule_id"`
	ScheduleName        string `json:"schedule_name"`
	BackupSourceID      int64  `json:"backup_source_id"`
	BackupDestinationID int64  `json:"backup_destination_id"`
	BackupSchedule      string `json:"backup_schedule"`
	IsActive            bool   `json:"is_active"`
	KeepN               int    `json:"keep_n"`
}

// ScheduleSpec is the full set of fields a schedule form submits.
type ScheduleSpec struct {
	Name          string
	SourceID      int64
	DestinationID int64
	Expression    string
	KeepN         int
	IsActive      bool
}

// ListSchedules returns all backup schedules for the tenant.
func (c *Client) ListSchedules(ctx context.Context) ([]Schedule, Response) {
	resp := c.do(ctx, http.MethodGet, "backup-schedules/list", nil, nil,
		"failed to list backup schedules")
	return unwrapList[Schedule](resp, "backup_schedules"), resp
}

// CreateSchedule adds a recurring backup job. New schedules start active.
func (c *Client) CreateSchedule(ctx context.Context, spec ScheduleSpec) Response {
	return c.do(ctx, http.MethodPost, "backup-schedules/add", nil, addScheduleRequest{
		ScheduleName:        spec.Name,
		BackupSourceID:      spec.SourceID,
		BackupDestinationID: spec.DestinationID,
		BackupSchedule:      spec.Expression,
		KeepN:               spec.KeepN,
	}, "failed to add backup schedule")
}

// UpdateSchedule replaces a schedule's definition.
func (c *Client) UpdateSchedule(ctx context.Context, id int64, spec ScheduleSpec) Response {
	return c.do(ctx, http.MethodPost, "backup-schedules/update", nil, updateScheduleRequest{
		ScheduleID:          id,
		ScheduleName:        spec.Name,
		BackupSourceID:      spec.SourceID,
		BackupDestinationID: spec.DestinationID,
		BackupSchedule:      spec.Expression,
		IsActive:            spec.IsActive,
		KeepN:               spec.KeepN,
	}, "failed to update backup schedule")
}

// DeleteSchedule removes a backup schedule.
func (c *Client) DeleteSchedule(ctx context.Context, id int64) Response {
	return c.do(ctx, http.MethodDelete, "backup-schedules/delete",
		queryOf("schedule_id", itoa(id)), nil, "failed to delete backup schedule")
}
