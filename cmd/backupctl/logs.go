package main

import (
	"context"
	"fmt"
	"os"
)

func cmdLogs() {
	client, _ := newClient()
	entries, resp := client.ListLogs(context.Background())
	if !resp.OK() {
		fmt.Fprintf(os.Stderr, "Error: %s\n", resp.ErrorMessage("failed to retrieve system logs"))
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No log entries.")
		return
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-5s  %-12s  %s", e.CreatedAt, e.Level, e.Service, e.Event)
		if e.Detail != "" {
			line += "  (" + e.Detail + ")"
		}
		fmt.Println(line)
	}
}
