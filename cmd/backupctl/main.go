package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "profile":
		cmdProfile(os.Args[2:])
	case "register":
		cmdRegister(os.Args[2:])
	case "login":
		cmdLogin(os.Args[2:])
	case "logout":
		cmdLogout()
	case "whoami":
		cmdWhoAmI()
	case "change-password":
		cmdChangePassword(os.Args[2:])
	case "source":
		cmdResource(sourceCollection, os.Args[2:])
	case "dest", "destination":
		cmdResource(destinationCollection, os.Args[2:])
	case "schedule":
		cmdSchedule(os.Args[2:])
	case "backup":
		cmdBackup(os.Args[2:])
	case "logs":
		cmdLogs()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `backupctl: command-line console for the backup service

Usage:
  backupctl profile add -name NAME -url URL
  backupctl profile list
  backupctl profile use <name>
  backupctl profile delete <name>
  backupctl register -user USER
  backupctl login -user USER
  backupctl logout
  backupctl whoami
  backupctl change-password -user USER
  backupctl source list|add|update|delete|test [flags]
  backupctl dest list|add|update|delete|test [flags]
  backupctl schedule list|add|update|delete [flags]
  backupctl backup list|create|restore|delete [flags]
  backupctl logs

Commands:
  profile          Manage backend endpoints (stored in ~/.config/backupdesk/)
  register         Create an account on the active backend
  login            Authenticate and store the session token
  logout           Discard the stored session
  whoami           Show the authenticated identity
  change-password  Rotate the account password
  source           Manage backup sources (postgres, elasticsearch, vault, qdrant)
  dest             Manage backup destinations (s3, smb, sftp, local_fs)
  schedule         Manage recurring backup schedules
  backup           List, create, restore, and delete stored backups
  logs             Show the service's log entries

Destructive operations (delete, restore) prompt unless -y is given.`)
}
