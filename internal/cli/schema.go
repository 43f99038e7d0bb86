package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"feedbackManagement/internal/db"
)

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "migrate",
		Short:   "Apply pending schema migrations",
		GroupID: "schema",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := db.Connect(a.dbPath)
			if err != nil {
				return err
			}
			defer d.Close()

			done, err := db.Migrate(d)
			if err != nil {
				return err
			}
			if len(done) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			}
			for _, v := range done {
				fmt.Fprintf(cmd.OutOrStdout(), "APPLIED %04d\n", v)
			}
			return nil
		},
	}
}

func (a *app) rollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rollback",
		Short:   "Revert the most recently applied migration",
		GroupID: "schema",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := db.Connect(a.dbPath)
			if err != nil {
				return err
			}
			defer d.Close()

			v, err := db.RollbackLast(d)
			if err != nil {
				return err
			}
			if v == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to roll back")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ROLLED BACK %04d\n", v)
			return nil
		},
	}
}
