package cmd

import (
	"fmt"

	"github.com/4GeeksAcademy/Place-Between-Daniel/db"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := db.Migrate(a.svc.DB); err != nil {
			return err
		}
		utils.Logger.Info("migration_completed")
		fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
		return nil
	},
}
