package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Reminder dispatcher tools",
}

var remindersRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Send every reminder that is due right now and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		sent, err := a.svc.DispatchReminders(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "%d reminders sent\n", sent)
		return err
	},
}

func init() {
	remindersCmd.AddCommand(remindersRunCmd)
}
