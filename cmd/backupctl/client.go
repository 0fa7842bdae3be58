package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/edvin/backupdesk/internal/backend"
	"github.com/edvin/backupdesk/internal/cli"
	"github.com/edvin/backupdesk/internal/session"
)

// newClient wires the active profile and the on-disk session into a
// backend client. Exits with a message when no profile is usable.
func newClient() (*backend.Client, *session.Store) {
	profile, err := cli.ActiveProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := session.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)
	if os.Getenv("BACKUPCTL_DEBUG") != "" {
		logger = logger.Level(zerolog.DebugLevel)
	}

	return backend.NewClient(profile.BackendURL, store, logger), store
}

// finish prints the outcome of a mutating call and exits non-zero on
// failure.
func finish(resp backend.Response, fallback string) {
	if !resp.OK() {
		fmt.Fprintf(os.Stderr, "Error: %s\n", resp.ErrorMessage(fallback))
		os.Exit(1)
	}
	if resp.Message != "" {
		fmt.Println(resp.Message)
	}
}

// confirm asks for interactive confirmation unless -y was given.
func confirm(prompt string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// readPassword prompts for a password without echoing.
func readPassword(prompt string) string {
	fmt.Print(prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read password: %v\n", err)
		os.Exit(1)
	}
	return string(pw)
}
