package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/library/internal/audit"
	auditrepo "github.com/mrlokans/library/internal/database/audit"
)

// AuditPruneCommand removes audit events older than a retention period.
type AuditPruneCommand struct {
	DatabasePath string
	Retention    time.Duration

	out io.Writer
}

func NewAuditPruneCommand() *AuditPruneCommand {
	return &AuditPruneCommand{out: os.Stdout}
}

func (cmd *AuditPruneCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("audit-prune", flag.ContinueOnError)

	fs.DurationVar(&cmd.Retention, "older-than", 90*24*time.Hour, "Delete events older than this duration")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the database file (defaults to DATABASE_CONNECTION_STRING)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s audit-prune [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s audit-prune -older-than 720h\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Retention <= 0 {
		return fmt.Errorf("-older-than must be positive")
	}
	return nil
}

func (cmd *AuditPruneCommand) Run() error {
	db, _, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	deleted, err := audit.NewService(auditrepo.NewRepository(db)).DeleteOldEvents(context.Background(), cmd.Retention)
	if err != nil {
		return fmt.Errorf("failed to prune audit events: %w", err)
	}

	fmt.Fprintf(cmd.out, "Deleted %d audit events older than %s\n", deleted, cmd.Retention)
	return nil
}
