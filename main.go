package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/library/internal/cli"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// command is implemented by every CLI subcommand.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

//go:generate swag init -g main.go -o docs --outputTypes go,json,yaml --parseInternal

//	@title						Library API
//	@version					1.0
//	@description				Book catalog backed by an embedded SQLite database.
//	@BasePath					/
//	@securityDefinitions.apikey	ApiKey
//	@in							header
//	@name						Authorization
//	@description				API key, sent raw or with an ApiKey or Bearer scheme.
func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "migrate":
		cmd = cli.NewMigrateCommand()
	case "apikey-create":
		cmd = cli.NewAPIKeyCreateCommand()
	case "apikey-list":
		cmd = cli.NewAPIKeyListCommand()
	case "apikey-revoke":
		cmd = cli.NewAPIKeyRevokeCommand()
	case "audit-prune":
		cmd = cli.NewAuditPruneCommand()
	case "version":
		fmt.Printf("%s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve           Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  migrate         Create or upgrade the database schema\n")
	fmt.Fprintf(os.Stderr, "  apikey-create   Generate a new API key\n")
	fmt.Fprintf(os.Stderr, "  apikey-list     List stored API keys\n")
	fmt.Fprintf(os.Stderr, "  apikey-revoke   Revoke a stored API key\n")
	fmt.Fprintf(os.Stderr, "  audit-prune     Delete old audit events\n")
	fmt.Fprintf(os.Stderr, "  version         Print the build version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
