package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match scheduling and results commands",
	}

	cmd.AddCommand(newMatchListCmd())
	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchOrderCmd())
	cmd.AddCommand(newMatchReorderCmd())
	cmd.AddCommand(newMatchStartCmd())
	cmd.AddCommand(newMatchCompleteCmd())
	cmd.AddCommand(newMatchResultCmd())
	cmd.AddCommand(newMatchDeleteCmd())

	return cmd
}

func newMatchListCmd() *cobra.Command {
	var teamType, status, poolID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/matches"
			sep := "?"
			if teamType != "" {
				path += sep + "team_type=" + teamType
				sep = "&"
			}
			if status != "" {
				path += sep + "status=" + status
				sep = "&"
			}
			if poolID != "" {
				path += sep + "pool_id=" + poolID
			}

			var result []Match
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&teamType, "division", "", "Filter by division: male, female")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status: upcoming, ongoing, completed")
	cmd.Flags().StringVar(&poolID, "pool", "", "Filter by pool id")

	return cmd
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match
			if err := client.Get("/api/v1/matches/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchOrderCmd() *cobra.Command {
	var teamType string

	cmd := &cobra.Command{
		Use:   "order <match-id>...",
		Short: "Save the upcoming match order for a division",
		Long: `Save the display order of a division's not-yet-completed matches.
The argument list must contain every upcoming match id exactly once, in
the desired order. Saving assigns permanent match numbers continuing
from the completed sequence.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, len(args))
			for i, raw := range args {
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return err
				}
				ids[i] = id
			}

			req := map[string]any{
				"team_type": teamType,
				"match_ids": ids,
			}

			var result []Match
			if err := client.Put("/api/v1/matches/order", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&teamType, "division", "", "Division: male, female (required)")
	_ = cmd.MarkFlagRequired("division")

	return cmd
}

func newMatchReorderCmd() *cobra.Command {
	var newIndex int

	cmd := &cobra.Command{
		Use:   "reorder <id>",
		Short: "Move one upcoming match to a new position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{"new_index": newIndex}

			var result Match
			if err := client.Post("/api/v1/matches/"+args[0]+"/reorder", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&newIndex, "to", 0, "Target position, 0-based (required)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newMatchStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Mark a match as ongoing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match
			if err := client.Post("/api/v1/matches/"+args[0]+"/start", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchCompleteCmd() *cobra.Command {
	var winner, score string

	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Record a match result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"winner_id": winner,
				"score":     score,
			}

			var result Match
			if err := client.Post("/api/v1/matches/"+args[0]+"/complete", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&winner, "winner", "", "Winning team id (required)")
	cmd.Flags().StringVar(&score, "score", "", `Score string, e.g. "45 - 32" (required)`)
	_ = cmd.MarkFlagRequired("winner")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func newMatchResultCmd() *cobra.Command {
	var number int
	var winner, score string

	cmd := &cobra.Command{
		Use:   "result <id>",
		Short: "Correct a completed match's result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"match_number": number,
				"winner_id":    winner,
				"score":        score,
			}

			var result Match
			if err := client.Patch("/api/v1/matches/"+args[0]+"/result", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&number, "number", 0, "Match number (required)")
	cmd.Flags().StringVar(&winner, "winner", "", "Winning team id (required)")
	cmd.Flags().StringVar(&score, "score", "", "Score string (required)")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("winner")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func newMatchDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/matches/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Match deleted")
			return nil
		},
	}
}
