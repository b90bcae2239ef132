package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Audit log commands",
	}

	cmd.AddCommand(newLogsLoginsCmd())
	cmd.AddCommand(newLogsActivityCmd())

	return cmd
}

func newLogsLoginsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "logins",
		Short: "Show recent login activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []LoginLog
			if err := client.Get("/api/v1/logs/logins?limit="+strconv.Itoa(limit), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to show")

	return cmd
}

func newLogsActivityCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent activity log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []ActivityLog
			if err := client.Get("/api/v1/logs/activity?limit="+strconv.Itoa(limit), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to show")

	return cmd
}
