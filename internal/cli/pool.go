package cli

import (
	"github.com/spf13/cobra"
)

func newPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Pool management commands",
	}

	cmd.AddCommand(newPoolListCmd())
	cmd.AddCommand(newPoolGetCmd())
	cmd.AddCommand(newPoolCreateCmd())
	cmd.AddCommand(newPoolUpdateCmd())
	cmd.AddCommand(newPoolDeleteCmd())
	cmd.AddCommand(newPoolFixMatchCmd())
	cmd.AddCommand(newPoolRoundRobinCmd())

	return cmd
}

func newPoolListCmd() *cobra.Command {
	var teamType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/pools"
			if teamType != "" {
				path += "?team_type=" + teamType
			}

			var result []Pool
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&teamType, "division", "", "Filter by division: male, female")

	return cmd
}

func newPoolGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Pool
			if err := client.Get("/api/v1/pools/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPoolCreateCmd() *cobra.Command {
	var name, teamType string
	var teamIDs []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":      name,
				"team_type": teamType,
				"team_ids":  teamIDs,
			}

			var result Pool
			if err := client.Post("/api/v1/pools", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Pool name (required)")
	cmd.Flags().StringVar(&teamType, "division", "", "Division: male, female (required)")
	cmd.Flags().StringSliceVar(&teamIDs, "teams", nil, "Team ids (at least 2)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("division")

	return cmd
}

func newPoolUpdateCmd() *cobra.Command {
	var name string
	var teamIDs []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a pool's name and team list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":     name,
				"team_ids": teamIDs,
			}

			var result Pool
			if err := client.Put("/api/v1/pools/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Pool name (required)")
	cmd.Flags().StringSliceVar(&teamIDs, "teams", nil, "Team ids (at least 2)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPoolDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a pool and all its matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/pools/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Pool deleted")
			return nil
		},
	}
}

func newPoolFixMatchCmd() *cobra.Command {
	var team1, team2 string

	cmd := &cobra.Command{
		Use:   "fix-match <pool-id>",
		Short: "Fix a match between two teams in a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"team1_id": team1,
				"team2_id": team2,
			}

			var result Match
			if err := client.Post("/api/v1/pools/"+args[0]+"/matches", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&team1, "team1", "", "First team id (required)")
	cmd.Flags().StringVar(&team2, "team2", "", "Second team id (required)")
	_ = cmd.MarkFlagRequired("team1")
	_ = cmd.MarkFlagRequired("team2")

	return cmd
}

func newPoolRoundRobinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "round-robin <pool-id>",
		Short: "Fix a match for every pair of teams in a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Match
			if err := client.Post("/api/v1/pools/"+args[0]+"/round-robin", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
