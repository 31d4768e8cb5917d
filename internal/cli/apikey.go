package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mrlokans/library/internal/auth"
	"github.com/mrlokans/library/internal/database/apikeys"
)

// APIKeyCreateCommand issues a new stored API key and prints it once.
type APIKeyCreateCommand struct {
	DatabasePath string
	Name         string

	out io.Writer
}

func NewAPIKeyCreateCommand() *APIKeyCreateCommand {
	return &APIKeyCreateCommand{out: os.Stdout}
}

func (cmd *APIKeyCreateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("apikey-create", flag.ContinueOnError)

	fs.StringVar(&cmd.Name, "name", "", "Human readable name of the key owner (required)")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the database file (defaults to DATABASE_CONNECTION_STRING)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s apikey-create -name <name> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Generate an API key. The key is printed once and only its hash is stored.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Name == "" {
		return fmt.Errorf("required flag -name not provided")
	}
	return nil
}

func (cmd *APIKeyCreateCommand) Run() error {
	db, cfg, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := auth.NewService(apikeys.NewRepository(db), cfg.Auth)
	key, record, err := svc.CreateKey(context.Background(), cmd.Name)
	if err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}

	fmt.Fprintf(cmd.out, "ID:   %s\n", record.ID)
	fmt.Fprintf(cmd.out, "Name: %s\n", record.Name)
	fmt.Fprintf(cmd.out, "Key:  %s\n", key)
	fmt.Fprintln(cmd.out, "\nStore this key now, it cannot be shown again.")
	return nil
}

// APIKeyRevokeCommand disables a stored API key.
type APIKeyRevokeCommand struct {
	DatabasePath string
	ID           string

	out io.Writer
}

func NewAPIKeyRevokeCommand() *APIKeyRevokeCommand {
	return &APIKeyRevokeCommand{out: os.Stdout}
}

func (cmd *APIKeyRevokeCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("apikey-revoke", flag.ContinueOnError)

	fs.StringVar(&cmd.ID, "id", "", "ID of the key to revoke (required)")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the database file (defaults to DATABASE_CONNECTION_STRING)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s apikey-revoke -id <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.ID == "" {
		return fmt.Errorf("required flag -id not provided")
	}
	return nil
}

func (cmd *APIKeyRevokeCommand) Run() error {
	db, cfg, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := auth.NewService(apikeys.NewRepository(db), cfg.Auth)
	if err := svc.RevokeKey(context.Background(), cmd.ID); err != nil {
		if errors.Is(err, auth.ErrAPIKeyNotFound) {
			return fmt.Errorf("no active api key with id %s", cmd.ID)
		}
		return fmt.Errorf("failed to revoke api key: %w", err)
	}

	fmt.Fprintf(cmd.out, "Revoked api key %s\n", cmd.ID)
	return nil
}

// APIKeyListCommand prints stored keys without their secrets.
type APIKeyListCommand struct {
	DatabasePath string

	out io.Writer
}

func NewAPIKeyListCommand() *APIKeyListCommand {
	return &APIKeyListCommand{out: os.Stdout}
}

func (cmd *APIKeyListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("apikey-list", flag.ContinueOnError)
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the database file (defaults to DATABASE_CONNECTION_STRING)")
	return fs.Parse(args)
}

func (cmd *APIKeyListCommand) Run() error {
	db, cfg, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := auth.NewService(apikeys.NewRepository(db), cfg.Auth)
	keys, err := svc.ListKeys(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list api keys: %w", err)
	}

	if len(keys) == 0 {
		fmt.Fprintln(cmd.out, "No api keys")
		return nil
	}

	w := tabwriter.NewWriter(cmd.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPREFIX\tCREATED\tLAST USED\tSTATUS")
	for _, key := range keys {
		status := "active"
		if key.IsRevoked() {
			status = "revoked"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			key.ID, key.Name, key.Prefix,
			key.CreatedAt.Format(time.RFC3339), formatOptionalTime(key.LastUsedAt), status)
	}
	return w.Flush()
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}
