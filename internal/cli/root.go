// Package cli implements feedbackctl, the operator tool for the feedback database.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"feedbackManagement/internal/auth"
	"feedbackManagement/internal/config"
	"feedbackManagement/internal/db"
	"feedbackManagement/internal/logging"
	"feedbackManagement/internal/service"
)

type app struct {
	dbPath string
	cfg    *config.Config
}

// NewRootCmd builds the command tree. Output goes to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "feedbackctl",
		Short:         "Administer the feedback database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithDefaults()
			if err != nil {
				return err
			}
			a.cfg = cfg
			if !cmd.Flags().Changed("db") {
				a.dbPath = cfg.Database.Path
			}
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "database path (defaults to DB_PATH)")

	root.AddGroup(
		&cobra.Group{ID: "schema", Title: "Schema:"},
		&cobra.Group{ID: "data", Title: "Data:"},
	)
	root.AddCommand(
		a.migrateCmd(),
		a.rollbackCmd(),
		a.purgeNotificationsCmd(),
		a.exportPDFCmd(),
		a.showFeedbackCmd(),
	)
	return root
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, out io.Writer) int {
	root := NewRootCmd(out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return 1
	}
	return 0
}

// open connects with migrations applied.
func (a *app) open() (*sql.DB, error) {
	d, err := db.Open(a.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", a.dbPath, err)
	}
	return d, nil
}

func (a *app) service(d *sql.DB) *service.Service {
	return service.New(service.Deps{
		DB:    d,
		Codec: auth.NewTokenCodec(a.cfg.Auth.JWTSecret, a.cfg.Auth.AccessTokenTTL),
		Log:   logging.Nop(),
	})
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, 30*time.Second)
}
