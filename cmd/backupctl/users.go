package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/edvin/backupdesk/internal/cli"
	"github.com/edvin/backupdesk/internal/console"
	"github.com/edvin/backupdesk/internal/session"
)

// stderrNotifier surfaces view notices on the terminal.
type stderrNotifier struct{}

func (stderrNotifier) Notify(n console.Notice) {
	if n.Success() {
		return // success messages are printed by the command itself
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", n.Message)
}

func newUserPanel() (*console.UserPanel, *session.Store) {
	client, store := newClient()
	return console.NewUserPanel(client, store, stderrNotifier{}), store
}

func cmdProfile(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: backupctl profile add|list|use|delete")
		os.Exit(1)
	}

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("profile add", flag.ExitOnError)
		name := fs.String("name", "", "Profile name (required)")
		url := fs.String("url", "", "Backend base URL (required)")
		fs.Parse(args[1:])

		p, err := cli.SaveProfile(*name, *url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved profile %q (%s)\n", p.Name, p.BackendURL)

	case "list":
		profiles, err := cli.ListProfiles()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(profiles) == 0 {
			fmt.Println("No profiles found. Add one with: backupctl profile add -name NAME -url URL")
			return
		}

		active, _ := cli.GetActive()
		fmt.Printf("%-20s %-40s %s\n", "NAME", "BACKEND", "ACTIVE")
		for _, p := range profiles {
			marker := ""
			if p.Name == active {
				marker = "*"
			}
			fmt.Printf("%-20s %-40s %s\n", p.Name, p.BackendURL, marker)
		}

	case "use":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: backupctl profile use <name>")
			os.Exit(1)
		}
		if err := cli.SetActive(args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Active profile set to %q\n", args[1])

	case "delete":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: backupctl profile delete <name>")
			os.Exit(1)
		}
		if err := cli.DeleteProfile(args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted profile %q\n", args[1])

	default:
		fmt.Fprintf(os.Stderr, "Unknown profile command: %s\n", args[0])
		os.Exit(1)
	}
}

func cmdRegister(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	user := fs.String("user", "", "Username (required)")
	fs.Parse(args)

	if *user == "" {
		fmt.Fprintln(os.Stderr, "Usage: backupctl register -user USER")
		os.Exit(1)
	}

	password := readPassword("Password: ")
	password2 := readPassword("Repeat password: ")

	panel, _ := newUserPanel()
	if err := panel.Register(context.Background(), *user, password, password2); err != nil {
		os.Exit(1)
	}
	fmt.Printf("User %q registered. Log in with: backupctl login -user %s\n", *user, *user)
}

func cmdLogin(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	user := fs.String("user", "", "Username (required)")
	fs.Parse(args)

	if *user == "" {
		fmt.Fprintln(os.Stderr, "Usage: backupctl login -user USER")
		os.Exit(1)
	}

	password := readPassword("Password: ")

	panel, _ := newUserPanel()
	if err := panel.Login(context.Background(), *user, password); err != nil {
		os.Exit(1)
	}
	fmt.Printf("Logged in as %q\n", *user)
}

func cmdLogout() {
	panel, _ := newUserPanel()
	if err := panel.Logout(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logged out")
}

func cmdWhoAmI() {
	panel, store := newUserPanel()
	if !panel.LoggedIn() {
		fmt.Println("Not logged in.")
		return
	}

	info, err := panel.WhoAmI(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s, _ := store.Load()
	if s != nil && s.Username != "" {
		fmt.Printf("User:    %s\n", s.Username)
	}
	fmt.Printf("User ID: %d\n", info.UserID)
	fmt.Printf("Tenant:  %s\n", info.TenantID)
	if s != nil && !s.ExpiresAt.IsZero() {
		fmt.Printf("Expires: %s\n", s.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	}
}

func cmdChangePassword(args []string) {
	fs := flag.NewFlagSet("change-password", flag.ExitOnError)
	user := fs.String("user", "", "Username (required)")
	fs.Parse(args)

	if *user == "" {
		fmt.Fprintln(os.Stderr, "Usage: backupctl change-password -user USER")
		os.Exit(1)
	}

	oldPassword := readPassword("Current password: ")
	newPassword := readPassword("New password: ")
	newPassword2 := readPassword("Repeat new password: ")

	panel, _ := newUserPanel()
	if err := panel.ChangePassword(context.Background(), *user, oldPassword, newPassword, newPassword2); err != nil {
		os.Exit(1)
	}
	fmt.Println("Password changed")
}
