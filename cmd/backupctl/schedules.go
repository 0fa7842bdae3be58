package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/edvin/backupdesk/internal/backend"
	"github.com/edvin/backupdesk/internal/schedule"
)

func cmdSchedule(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: backupctl schedule list|add|update|delete")
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		scheduleList()
	case "add":
		scheduleAdd(args[1:])
	case "update":
		scheduleUpdate(args[1:])
	case "delete":
		scheduleDelete(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown schedule command: %s\n", args[0])
		os.Exit(1)
	}
}

func scheduleList() {
	client, _ := newClient()
	schedules, resp := client.ListSchedules(context.Background())
	if !resp.OK() {
		fmt.Fprintf(os.Stderr, "Error: %s\n", resp.ErrorMessage("failed to list backup schedules"))
		os.Exit(1)
	}

	if len(schedules) == 0 {
		fmt.Println("No backup schedules.")
		return
	}

	fmt.Printf("%-6s %-24s %-8s %-8s %-16s %-7s %-8s %s\n",
		"ID", "NAME", "SOURCE", "DEST", "SCHEDULE", "KEEP", "ACTIVE", "NEXT RUN")
	for _, s := range schedules {
		next := s.NextRun
		if next == "" {
			if t, err := schedule.NextRun(s.Schedule, time.Now()); err == nil {
				next = t.Format("2006-01-02 15:04")
			}
		}
		fmt.Printf("%-6d %-24s %-8d %-8d %-16s %-7d %-8t %s\n",
			s.ID, s.Name, s.SourceID, s.DestinationID, s.Schedule, s.KeepN, s.IsActive, next)
	}
}

// parseExpression accepts a preset name or a raw cron expression.
func parseExpression(raw string) string {
	expr, err := schedule.Normalize(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (presets: %s)\n", err, strings.Join(schedule.PresetNames(), ", "))
		os.Exit(1)
	}
	return expr
}

func scheduleAdd(args []string) {
	fs := flag.NewFlagSet("schedule add", flag.ExitOnError)
	name := fs.String("name", "", "Schedule name (required)")
	sourceID := fs.Int64("source", 0, "Backup source ID (required)")
	destID := fs.Int64("dest", 0, "Backup destination ID (required)")
	expr := fs.String("cron", "", "Preset (hourly|daily|weekly|monthly) or cron expression (required)")
	keepN := fs.Int("keep", 7, "Number of backups to retain")
	fs.Parse(args)

	if *name == "" || *sourceID == 0 || *destID == 0 || *expr == "" {
		fmt.Fprintln(os.Stderr, "Usage: backupctl schedule add -name NAME -source ID -dest ID -cron EXPR [-keep N]")
		os.Exit(1)
	}
	if err := schedule.ValidateKeepN(*keepN); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client, _ := newClient()
	resp := client.CreateSchedule(context.Background(), backend.ScheduleSpec{
		Name:          *name,
		SourceID:      *sourceID,
		DestinationID: *destID,
		Expression:    parseExpression(*expr),
		KeepN:         *keepN,
		IsActive:      true,
	})
	finish(resp, "failed to add backup schedule")
}

func scheduleUpdate(args []string) {
	fs := flag.NewFlagSet("schedule update", flag.ExitOnError)
	id := fs.Int64("id", 0, "Schedule ID (required)")
	name := fs.String("name", "", "Schedule name (required)")
	sourceID := fs.Int64("source", 0, "Backup source ID (required)")
	destID := fs.Int64("dest", 0, "Backup destination ID (required)")
	expr := fs.String("cron", "", "Preset or cron expression (required)")
	keepN := fs.Int("keep", 7, "Number of backups to retain")
	active := fs.Bool("active", true, "Whether the schedule runs")
	fs.Parse(args)

	if *id == 0 || *name == "" || *sourceID == 0 || *destID == 0 || *expr == "" {
		fmt.Fprintln(os.Stderr, "Usage: backupctl schedule update -id ID -name NAME -source ID -dest ID -cron EXPR [-keep N] [-active=false]")
		os.Exit(1)
	}
	if err := schedule.ValidateKeepN(*keepN); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client, _ := newClient()
	resp := client.UpdateSchedule(context.Background(), *id, backend.ScheduleSpec{
		Name:          *name,
		SourceID:      *sourceID,
		DestinationID: *destID,
		Expression:    parseExpression(*expr),
		KeepN:         *keepN,
		IsActive:      *active,
	})
	finish(resp, "failed to update backup schedule")
}

func scheduleDelete(args []string) {
	fs := flag.NewFlagSet("schedule delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "Schedule ID (required)")
	yes := fs.Bool("y", false, "Skip confirmation")
	fs.Parse(args)

	if *id == 0 {
		fmt.Fprintln(os.Stderr, "Usage: backupctl schedule delete -id ID [-y]")
		os.Exit(1)
	}

	if !confirm(fmt.Sprintf("Delete backup schedule %d?", *id), *yes) {
		fmt.Println("Aborted.")
		return
	}

	client, _ := newClient()
	resp := client.DeleteSchedule(context.Background(), *id)
	finish(resp, "failed to delete backup schedule")
}
