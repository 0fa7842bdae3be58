package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/edvin/backupdesk/internal/backend"
	"github.com/edvin/backupdesk/internal/registry"
)

// collection parameterizes the source and destination commands, which
// differ only in family, kinds, and the client methods they call.
type collection struct {
	noun   string
	family registry.Family
	kinds  []registry.Kind

	list   func(*backend.Client, context.Context) ([]resourceRow, backend.Response)
	create func(*backend.Client, context.Context, string, registry.Kind, registry.Credentials) backend.Response
	update func(*backend.Client, context.Context, int64, *string, *registry.CredentialsPatch) backend.Response
	remove func(*backend.Client, context.Context, int64) backend.Response
	test   func(*backend.Client, context.Context, int64) backend.Response
}

type resourceRow struct {
	ID   int64
	Name string
	Kind string
	URL  string
}

var sourceCollection = collection{
	noun:   "source",
	family: registry.FamilySource,
	kinds:  registry.SourceKinds,
	list: func(c *backend.Client, ctx context.Context) ([]resourceRow, backend.Response) {
		sources, resp := c.ListSources(ctx)
		rows := make([]resourceRow, 0, len(sources))
		for _, s := range sources {
			rows = append(rows, resourceRow{ID: s.ID, Name: s.Name, Kind: s.SourceType, URL: s.URL})
		}
		return rows, resp
	},
	create: (*backend.Client).CreateSource,
	update: (*backend.Client).UpdateSource,
	remove: (*backend.Client).DeleteSource,
	test:   (*backend.Client).TestSourceConnection,
}

var destinationCollection = collection{
	noun:   "destination",
	family: registry.FamilyDestination,
	kinds:  registry.DestinationKinds,
	list: func(c *backend.Client, ctx context.Context) ([]resourceRow, backend.Response) {
		dests, resp := c.ListDestinations(ctx)
		rows := make([]resourceRow, 0, len(dests))
		for _, d := range dests {
			rows = append(rows, resourceRow{ID: d.ID, Name: d.Name, Kind: d.DestinationType, URL: d.URL})
		}
		return rows, resp
	},
	create: (*backend.Client).CreateDestination,
	update: (*backend.Client).UpdateDestination,
	remove: (*backend.Client).DeleteDestination,
	test:   (*backend.Client).TestDestinationConnection,
}

func cmdResource(col collection, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: backupctl %s list|add|update|delete|test\n", col.noun)
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		resourceList(col)
	case "add":
		resourceAdd(col, args[1:])
	case "update":
		resourceUpdate(col, args[1:])
	case "delete":
		resourceDelete(col, args[1:])
	case "test":
		resourceTest(col, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown %s command: %s\n", col.noun, args[0])
		os.Exit(1)
	}
}

func resourceList(col collection) {
	client, _ := newClient()
	rows, resp := col.list(client, context.Background())
	if !resp.OK() {
		fmt.Fprintf(os.Stderr, "Error: %s\n", resp.ErrorMessage("failed to list backup "+col.noun+"s"))
		os.Exit(1)
	}

	if len(rows) == 0 {
		fmt.Printf("No backup %ss.\n", col.noun)
		return
	}

	fmt.Printf("%-6s %-24s %-15s %s\n", "ID", "NAME", "TYPE", "URL")
	for _, r := range rows {
		fmt.Printf("%-6d %-24s %-15s %s\n", r.ID, r.Name, r.Kind, r.URL)
	}
}

// fieldFlags registers the connection-field flags shared by add and
// update. Which ones a kind requires is decided by the registry.
func fieldFlags(fs *flag.FlagSet, f *registry.Fields) {
	fs.StringVar(&f.Host, "host", "", "Hostname")
	fs.StringVar(&f.Port, "port", "", "Port")
	fs.StringVar(&f.Database, "db", "", "Database name (postgres)")
	fs.StringVar(&f.Bucket, "bucket", "", "Bucket name (s3)")
	fs.StringVar(&f.Endpoint, "endpoint", "", "Endpoint URL (s3)")
	fs.StringVar(&f.Region, "region", "", "Region name (s3)")
	fs.StringVar(&f.Path, "path", "", "Path (smb, sftp, local_fs)")
	fs.StringVar(&f.Login, "login", "", "Login")
	fs.StringVar(&f.Password, "password", "", "Password (omit to keep the stored one on update)")
	fs.StringVar(&f.APIKey, "api-key", "", "API key")
}

func resourceAdd(col collection, args []string) {
	fs := flag.NewFlagSet(col.noun+" add", flag.ExitOnError)
	kindFlag := fs.String("type", "", "Resource type: "+kindList(col.kinds)+" (required)")
	name := fs.String("name", "", "Display name (required)")
	var fields registry.Fields
	fieldFlags(fs, &fields)
	fs.Parse(args)

	if *name == "" || *kindFlag == "" {
		fmt.Fprintf(os.Stderr, "Usage: backupctl %s add -type TYPE -name NAME [connection flags]\n", col.noun)
		os.Exit(1)
	}

	kind, err := registry.ParseKind(col.family, *kindFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if missing := registry.MissingFields(kind, fields); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "Error: missing required fields for %s: %s\n", kind, strings.Join(missing, ", "))
		os.Exit(1)
	}

	client, _ := newClient()
	resp := col.create(client, context.Background(), *name, kind, registry.Encode(kind, fields))
	finish(resp, "failed to add backup "+col.noun)
}

func resourceUpdate(col collection, args []string) {
	fs := flag.NewFlagSet(col.noun+" update", flag.ExitOnError)
	id := fs.Int64("id", 0, "Resource ID (required)")
	kindFlag := fs.String("type", "", "Resource type: "+kindList(col.kinds)+" (required)")
	name := fs.String("name", "", "New display name")
	var fields registry.Fields
	fieldFlags(fs, &fields)
	fs.Parse(args)

	if *id == 0 || *kindFlag == "" {
		fmt.Fprintf(os.Stderr, "Usage: backupctl %s update -id ID -type TYPE [flags]\n", col.noun)
		os.Exit(1)
	}

	kind, err := registry.ParseKind(col.family, *kindFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// A partial connection-field set would silently keep the stored URL,
	// so demand the full set whenever any of them is given.
	if fields.HasConnectionFields() {
		if missing := registry.MissingFields(kind, fields); len(missing) > 0 {
			fmt.Fprintf(os.Stderr, "Error: incomplete connection fields for %s, missing: %s\n", kind, strings.Join(missing, ", "))
			os.Exit(1)
		}
	}

	var newName *string
	if *name != "" {
		newName = name
	}

	patch := registry.EncodeUpdate(kind, fields)
	client, _ := newClient()
	resp := col.update(client, context.Background(), *id, newName, &patch)
	finish(resp, "failed to update backup "+col.noun)
}

func resourceDelete(col collection, args []string) {
	fs := flag.NewFlagSet(col.noun+" delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "Resource ID (required)")
	yes := fs.Bool("y", false, "Skip confirmation")
	fs.Parse(args)

	if *id == 0 {
		fmt.Fprintf(os.Stderr, "Usage: backupctl %s delete -id ID [-y]\n", col.noun)
		os.Exit(1)
	}

	if !confirm(fmt.Sprintf("Delete backup %s %d?", col.noun, *id), *yes) {
		fmt.Println("Aborted.")
		return
	}

	client, _ := newClient()
	resp := col.remove(client, context.Background(), *id)
	finish(resp, "failed to delete backup "+col.noun)
}

func resourceTest(col collection, args []string) {
	fs := flag.NewFlagSet(col.noun+" test", flag.ExitOnError)
	id := fs.Int64("id", 0, "Resource ID (required)")
	fs.Parse(args)

	if *id == 0 {
		fmt.Fprintf(os.Stderr, "Usage: backupctl %s test -id ID\n", col.noun)
		os.Exit(1)
	}

	client, _ := newClient()
	resp := col.test(client, context.Background(), *id)
	finish(resp, "connection test failed")
}

func kindList(kinds []registry.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}
