package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func cmdBackup(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: backupctl backup list|create|restore|delete")
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		backupList(args[1:])
	case "create":
		backupCreate(args[1:])
	case "restore":
		backupRestore(args[1:])
	case "delete":
		backupDelete(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown backup command: %s\n", args[0])
		os.Exit(1)
	}
}

func backupList(args []string) {
	fs := flag.NewFlagSet("backup list", flag.ExitOnError)
	destID := fs.Int64("dest", 0, "Backup destination ID (required)")
	fs.Parse(args)

	if *destID == 0 {
		fmt.Fprintln(os.Stderr, "Usage: backupctl backup list -dest ID")
		os.Exit(1)
	}

	client, _ := newClient()
	archives, resp := client.ListArchives(context.Background(), *destID)
	if !resp.OK() {
		fmt.Fprintf(os.Stderr, "Error: %s\n", resp.ErrorMessage("failed to list backups"))
		os.Exit(1)
	}

	if len(archives) == 0 {
		fmt.Println("No backups at this destination.")
		return
	}

	fmt.Printf("%-32s %-20s %-12s %s\n", "PATH", "SOURCE", "SIZE", "MODIFIED")
	for _, a := range archives {
		fmt.Printf("%-32s %-20s %-12s %s\n", a.Path, a.Source, formatSize(a.Size), a.Modified)
	}
}

func backupCreate(args []string) {
	fs := flag.NewFlagSet("backup create", flag.ExitOnError)
	sourceID := fs.Int64("source", 0, "Backup source ID (required)")
	destID := fs.Int64("dest", 0, "Backup destination ID (required)")
	fs.Parse(args)

	if *sourceID == 0 || *destID == 0 {
		fmt.Fprintln(os.Stderr, "Usage: backupctl backup create -source ID -dest ID")
		os.Exit(1)
	}

	client, _ := newClient()
	resp := client.CreateArchive(context.Background(), *sourceID, *destID)
	finish(resp, "failed to create backup")
}

func backupRestore(args []string) {
	fs := flag.NewFlagSet("backup restore", flag.ExitOnError)
	sourceID := fs.Int64("source", 0, "Backup source ID to restore into (required)")
	destID := fs.Int64("dest", 0, "Backup destination ID holding the backup (required)")
	path := fs.String("path", "", "Backup path at the destination (required)")
	yes := fs.Bool("y", false, "Skip confirmation")
	fs.Parse(args)

	if *sourceID == 0 || *destID == 0 || *path == "" {
		fmt.Fprintln(os.Stderr, "Usage: backupctl backup restore -source ID -dest ID -path PATH [-y]")
		os.Exit(1)
	}

	if !confirm(fmt.Sprintf("Restore %q into source %d? This overwrites its current data.", *path, *sourceID), *yes) {
		fmt.Println("Aborted.")
		return
	}

	client, _ := newClient()
	resp := client.RestoreArchive(context.Background(), *sourceID, *destID, *path)
	finish(resp, "failed to restore backup")
}

func backupDelete(args []string) {
	fs := flag.NewFlagSet("backup delete", flag.ExitOnError)
	destID := fs.Int64("dest", 0, "Backup destination ID (required)")
	path := fs.String("path", "", "Backup path at the destination (required)")
	yes := fs.Bool("y", false, "Skip confirmation")
	fs.Parse(args)

	if *destID == 0 || *path == "" {
		fmt.Fprintln(os.Stderr, "Usage: backupctl backup delete -dest ID -path PATH [-y]")
		os.Exit(1)
	}

	if !confirm(fmt.Sprintf("Delete backup %q?", *path), *yes) {
		fmt.Println("Aborted.")
		return
	}

	client, _ := newClient()
	resp := client.DeleteArchive(context.Background(), *destID, *path)
	finish(resp, "failed to delete backup")
}

// formatSize renders a byte count the way the console does.
func formatSize(bytes float64) string {
	const unit = 1024.0
	switch {
	case bytes >= unit*unit*unit:
		return fmt.Sprintf("%.1f GiB", bytes/(unit*unit*unit))
	case bytes >= unit*unit:
		return fmt.Sprintf("%.1f MiB", bytes/(unit*unit))
	case bytes >= unit:
		return fmt.Sprintf("%.1f KiB", bytes/unit)
	default:
		return fmt.Sprintf("%.0f B", bytes)
	}
}
